package db

import "gorm.io/gorm"

// KVEntry 存储旧版键值后端中的一个命名空间键及其 JSON 值。
type KVEntry struct {
	gorm.Model
	Key   string `gorm:"size:191;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (KVEntry) TableName() string {
	return "kv_entries"
}
