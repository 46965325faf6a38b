package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

// Init 打开数据库连接并迁移键值存储与版本表，结果保存在全局 DB 中。
// databasePath 为空时将回退到默认值 wems.db。
func Init(databasePath string) error {
	gdb, err := Open(databasePath)
	if err != nil {
		return err
	}
	DB = gdb
	return nil
}

// Open 打开 sqlite 数据库并执行基础表的自动迁移。
// 各分区的数据表由本地索引库在初始化时自行创建。
func Open(databasePath string, opts ...gorm.Option) (*gorm.DB, error) {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "wems.db"
	}

	if !strings.HasPrefix(path, "file:") {
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
	}

	if len(opts) == 0 {
		opts = []gorm.Option{&gorm.Config{}}
	}

	gdb, err := gorm.Open(sqlite.Open(path), opts...)
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// AutoMigrate 为键值存储、版本记录与管理员账号创建表。
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&KVEntry{}, &DBVersion{}, &User{})
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
