package localdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/wems/internal/content"
	"github.com/wems/internal/notify"
	"github.com/wems/internal/storage"
)

// Store 是站点与后台读写内容的唯一入口。
// 具体后端在启动时确定，之后所有读写都交给它。
type Store struct {
	backend storage.Backend
	bus     *notify.Bus
	now     func() time.Time
}

// New 创建门面。bus 为空时内部新建一个。
func New(backend storage.Backend, bus *notify.Bus) *Store {
	if bus == nil {
		bus = notify.NewBus()
	}
	return &Store{backend: backend, bus: bus, now: time.Now}
}

// Kind 返回当前使用的后端类型
func (s *Store) Kind() storage.Kind {
	return s.backend.Kind()
}

// Backend 返回底层后端
func (s *Store) Backend() storage.Backend {
	return s.backend
}

// Subscribe 订阅内容变更事件
func (s *Store) Subscribe(topic notify.Topic) chan notify.Event {
	return s.bus.Subscribe(topic)
}

// Unsubscribe 取消订阅
func (s *Store) Unsubscribe(topic notify.Topic, ch chan notify.Event) {
	s.bus.Unsubscribe(topic, ch)
}

// Bus 返回事件总线
func (s *Store) Bus() *notify.Bus {
	return s.bus
}

// loadSection 读取并解析分区，任何失败都返回调用方给出的默认值。
func loadSection[T any](ctx context.Context, s *Store, section content.Section, def T) T {
	raw, err := s.backend.LoadSection(ctx, section)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) && !errors.Is(err, storage.ErrNotConfigured) {
			log.Printf("[localdb] load %s from %s failed: %v", section.Name, s.backend.Kind(), err)
		}
		return def
	}
	if string(raw) == "null" {
		return def
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Printf("[localdb] decode %s failed: %v", section.Name, err)
		return def
	}
	return value
}

func saveSection[T any](ctx context.Context, s *Store, section content.Section, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", section.Name, err)
	}
	if err := s.backend.SaveSection(ctx, section, raw); err != nil {
		log.Printf("[localdb] save %s to %s failed: %v", section.Name, s.backend.Kind(), err)
		return err
	}
	return nil
}
