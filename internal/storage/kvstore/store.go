package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wems/internal/content"
	"github.com/wems/internal/db"
	"github.com/wems/internal/notify"
	"github.com/wems/internal/storage"
)

// watchedKeys 写入后需要广播 storage 事件的键
var watchedKeys = map[string]struct{}{
	content.SectionSiteLogo.LegacyKey: {},
	storage.PreferenceKey:             {},
}

// Store 基于 kv_entries 表的命名空间键值存储。
// 同时充当 keyValue 后端，分区数据存放在各分区的 LegacyKey 下。
type Store struct {
	db       *gorm.DB
	notifier notify.Publisher
}

// Option 配置 Store
type Option func(*Store)

// WithNotifier 设置受关注键写入时的事件发布方
func WithNotifier(p notify.Publisher) Option {
	return func(s *Store) {
		s.notifier = p
	}
}

// New 创建键值存储，gdb 需要已迁移 db.KVEntry。
func New(gdb *gorm.DB, opts ...Option) *Store {
	s := &Store{db: gdb}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Kind 实现 storage.Backend
func (s *Store) Kind() storage.Kind {
	return storage.KindKeyValue
}

// Get 读取原始值，键不存在时返回 storage.ErrNotFound。
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var entry db.KVEntry
	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read key %s: %w", key, err)
	}
	return []byte(entry.Value), nil
}

// Put 写入或覆盖一个键。
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	entry := db.KVEntry{Key: key, Value: string(value)}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("write key %s: %w", key, err)
	}

	if _, ok := watchedKeys[key]; ok && s.notifier != nil {
		s.notifier.Publish(notify.Event{Topic: notify.TopicStorageKey, Key: key, Data: string(value)})
	}
	return nil
}

// Delete 删除一个键，键不存在时不报错。
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Unscoped().Where("key = ?", key).Delete(&db.KVEntry{}).Error; err != nil {
		return fmt.Errorf("delete key %s: %w", key, err)
	}
	return nil
}

// Keys 列出所有键
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := s.db.WithContext(ctx).Model(&db.KVEntry{}).Order("key ASC").Pluck("key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

// SaveSection 实现 storage.Backend
func (s *Store) SaveSection(ctx context.Context, section content.Section, payload []byte) error {
	if !json.Valid(payload) {
		return fmt.Errorf("section %s: invalid json payload", section.Name)
	}
	return s.Put(ctx, section.LegacyKey, payload)
}

// LoadSection 实现 storage.Backend
func (s *Store) LoadSection(ctx context.Context, section content.Section) ([]byte, error) {
	return s.Get(ctx, section.LegacyKey)
}

// Save 以 JSON 形式写入任意值。
func Save[T any](ctx context.Context, s *Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode key %s: %w", key, err)
	}
	return s.Put(ctx, key, raw)
}

// Load 读取并解析键值。键不存在或内容无法解析时返回默认值。
func Load[T any](ctx context.Context, s *Store, key string, def T) T {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("[kvstore] load %s failed: %v", key, err)
		}
		return def
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Printf("[kvstore] parse %s failed: %v", key, err)
		return def
	}
	return value
}
