package indexed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gorm.io/gorm"

	"github.com/wems/internal/content"
	"github.com/wems/internal/db"
	"github.com/wems/internal/notify"
	"github.com/wems/internal/storage"
	"github.com/wems/internal/storage/kvstore"
)

// CurrentVersion 本地索引库当前的结构版本
const CurrentVersion = 1

const insertBatchSize = 100

// Store 本地索引库：每个分区一张 sqlite 表。
type Store struct {
	db       *gorm.DB
	kv       *kvstore.Store
	notifier notify.Publisher
}

// Option 配置 Store
type Option func(*Store)

// WithNotifier 设置导入完成后的事件发布方
func WithNotifier(p notify.Publisher) Option {
	return func(s *Store) {
		s.notifier = p
	}
}

// New 创建本地索引库。kv 是旧版键值存储，用于迁移与导入镜像。
func New(gdb *gorm.DB, kv *kvstore.Store, opts ...Option) *Store {
	s := &Store{db: gdb, kv: kv}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Kind 实现 storage.Backend
func (s *Store) Kind() storage.Kind {
	return storage.KindLocal
}

// Init 创建分区表并检查结构版本。
// 首次初始化时写入版本记录；只要旧数据尚未全部迁移完成，就从键值存储继续迁移。
// 没有执行迁移时返回 nil 报告。
func (s *Store) Init(ctx context.Context) (*MigrationReport, error) {
	for _, section := range content.Sections() {
		if err := s.table(ctx, section).AutoMigrate(&db.TableRow{}); err != nil {
			return nil, fmt.Errorf("create table %s: %w", section.Table, err)
		}
	}

	var version db.DBVersion
	err := s.db.WithContext(ctx).Take(&version, 1).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.db.WithContext(ctx).Create(&db.DBVersion{ID: 1, Version: CurrentVersion}).Error; err != nil {
			return nil, fmt.Errorf("write db version: %w", err)
		}
		report, err := s.MigrateLegacy(ctx)
		if err != nil {
			return nil, err
		}
		return &report, nil
	case err != nil:
		return nil, fmt.Errorf("read db version: %w", err)
	}

	if version.Version < CurrentVersion {
		log.Printf("[indexed] upgrading schema from v%d to v%d", version.Version, CurrentVersion)
		if err := s.db.WithContext(ctx).Model(&version).Update("version", CurrentVersion).Error; err != nil {
			return nil, fmt.Errorf("bump db version: %w", err)
		}
	}

	// 上次未全部完成的迁移在每次启动时继续重试
	report, err := s.MigrateLegacy(ctx)
	if err != nil {
		return nil, err
	}
	if report.Skipped {
		return nil, nil
	}
	return &report, nil
}

// Version 返回已记录的结构版本，未初始化时为 0。
func (s *Store) Version(ctx context.Context) (int, error) {
	var version db.DBVersion
	err := s.db.WithContext(ctx).Take(&version, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return version.Version, nil
}

// SaveSection 整体替换分区数据。先解析出所有行，再在一个事务内清空并写入，
// 任何一步失败都会保留原有数据。
func (s *Store) SaveSection(ctx context.Context, section content.Section, payload []byte) error {
	rows, err := buildRows(section, payload)
	if err != nil {
		return fmt.Errorf("section %s: %w", section.Name, err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(section.Table).Where("1 = 1").Delete(&db.TableRow{}).Error; err != nil {
			return fmt.Errorf("clear %s: %w", section.Table, err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Table(section.Table).CreateInBatches(rows, insertBatchSize).Error; err != nil {
			return fmt.Errorf("insert %s: %w", section.Table, err)
		}
		return nil
	})
}

// LoadSection 读取分区数据，表为空时返回 storage.ErrNotFound。
func (s *Store) LoadSection(ctx context.Context, section content.Section) ([]byte, error) {
	rows, err := s.rows(ctx, section)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}

	if section.Singleton {
		return []byte(rows[0].Payload), nil
	}
	items := make([][]byte, 0, len(rows))
	for _, row := range rows {
		items = append(items, []byte(row.Payload))
	}
	return storage.JoinArray(items), nil
}

// AppendItem 在集合末尾追加一个元素
func (s *Store) AppendItem(ctx context.Context, section content.Section, item []byte) error {
	if section.Singleton {
		return fmt.Errorf("section %s is not a collection", section.Name)
	}
	key, err := storage.ItemKey(item)
	if err != nil {
		return err
	}
	compact, err := storage.Compact(item)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table(section.Table).Where("item_key = ?", key).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", content.ErrDuplicateID, key)
		}

		var maxPosition int
		if err := tx.Table(section.Table).Select("COALESCE(MAX(position), -1)").Scan(&maxPosition).Error; err != nil {
			return err
		}
		row := db.TableRow{ItemKey: key, Position: maxPosition + 1, Payload: string(compact)}
		return tx.Table(section.Table).Create(&row).Error
	})
}

// UpdateItemField 修改集合中某个元素的单个字段
func (s *Store) UpdateItemField(ctx context.Context, section content.Section, id, field string, value any) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row db.TableRow
		err := tx.Table(section.Table).Where("item_key = ?", id).Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}

		patched, err := sjson.Set(row.Payload, field, value)
		if err != nil {
			return fmt.Errorf("patch %s.%s: %w", id, field, err)
		}
		return tx.Table(section.Table).Where("item_key = ?", id).Update("payload", patched).Error
	})
}

// DeleteItem 删除集合中的一个元素
func (s *Store) DeleteItem(ctx context.Context, section content.Section, id string) error {
	result := s.db.WithContext(ctx).Table(section.Table).Where("item_key = ?", id).Delete(&db.TableRow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ClearSection 清空一个分区
func (s *Store) ClearSection(ctx context.Context, section content.Section) error {
	return s.table(ctx, section).Where("1 = 1").Delete(&db.TableRow{}).Error
}

// ClearAll 清空所有分区，版本记录与迁移标记保持不变。
func (s *Store) ClearAll(ctx context.Context) error {
	for _, section := range content.Sections() {
		if err := s.ClearSection(ctx, section); err != nil {
			return fmt.Errorf("clear %s: %w", section.Table, err)
		}
	}
	return nil
}

// Info 描述本地索引库的状态
type Info struct {
	Version int            `json:"version"`
	Tables  map[string]int `json:"tables"`
	Storage string         `json:"storage"`
}

// Info 返回版本号和每张表的行数。
func (s *Store) Info(ctx context.Context) (Info, error) {
	version, err := s.Version(ctx)
	if err != nil {
		return Info{}, err
	}

	info := Info{Version: version, Tables: make(map[string]int), Storage: "sqlite"}
	for _, section := range content.Sections() {
		var count int64
		if err := s.table(ctx, section).Count(&count).Error; err != nil {
			return Info{}, fmt.Errorf("count %s: %w", section.Table, err)
		}
		info.Tables[section.Table] = int(count)
	}
	return info, nil
}

func (s *Store) table(ctx context.Context, section content.Section) *gorm.DB {
	return s.db.WithContext(ctx).Table(section.Table)
}

func (s *Store) rows(ctx context.Context, section content.Section) ([]db.TableRow, error) {
	var rows []db.TableRow
	if err := s.table(ctx, section).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read %s: %w", section.Table, err)
	}
	return rows, nil
}

// buildRows 把分区载荷转成表行，集合按元素 id 作主键。
func buildRows(section content.Section, payload []byte) ([]db.TableRow, error) {
	if !gjson.ValidBytes(payload) {
		return nil, errors.New("invalid json payload")
	}

	if section.Singleton {
		compact, err := storage.Compact(payload)
		if err != nil {
			return nil, err
		}
		return []db.TableRow{{ItemKey: db.SingletonKey, Payload: string(compact)}}, nil
	}

	items, err := storage.SplitArray(payload)
	if err != nil {
		return nil, err
	}

	rows := make([]db.TableRow, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		key, err := storage.ItemKey(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %s", content.ErrDuplicateID, key)
		}
		seen[key] = struct{}{}

		compact, err := storage.Compact(item)
		if err != nil {
			return nil, err
		}
		rows = append(rows, db.TableRow{ItemKey: key, Position: i, Payload: string(compact)})
	}
	return rows, nil
}
