package notify

import (
	"sync"
	"time"
)

// Topic 表示事件主题
type Topic string

const (
	// TopicLogoUpdated 站点 Logo 已更新，Data 为新的 Logo 地址
	TopicLogoUpdated Topic = "logo-updated"
	// TopicDataImported 备份数据已导入，订阅方应刷新所有内容
	TopicDataImported Topic = "data-imported"
	// TopicStorageKey 键值存储中的受关注键被写入，Key 为对应键
	TopicStorageKey Topic = "storage"
)

// Event represents a persistence change notification.
type Event struct {
	Topic     Topic     `json:"topic"`
	Key       string    `json:"key,omitempty"`
	Data      string    `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher 是只需要发送事件的组件所依赖的接口。
type Publisher interface {
	Publish(event Event)
}

// Bus 按主题分发事件。订阅方拿到带缓冲的通道，
// 发送时通道已满则丢弃该事件，发布方永远不会被阻塞。
type Bus struct {
	mu          sync.RWMutex
	subscribers map[Topic]map[chan Event]struct{}
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[Topic]map[chan Event]struct{})}
}

// Subscribe 注册对某个主题的关注并返回接收通道
func (b *Bus) Subscribe(topic Topic) chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, 10)
	if _, exists := b.subscribers[topic]; !exists {
		b.subscribers[topic] = make(map[chan Event]struct{})
	}
	b.subscribers[topic][ch] = struct{}{}
	return ch
}

// Unsubscribe 移除订阅并关闭通道，重复调用是安全的。
func (b *Bus) Unsubscribe(topic Topic, ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	clients, exists := b.subscribers[topic]
	if !exists {
		return
	}
	if _, ok := clients[ch]; !ok {
		return
	}
	delete(clients, ch)
	if len(clients) == 0 {
		delete(b.subscribers, topic)
	}
	close(ch)
}

// Publish sends an event to every subscriber of its topic.
func (b *Bus) Publish(event Event) {
	if b == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers[event.Topic] {
		select {
		case ch <- event:
		default:
			// 订阅方未及时消费，跳过
		}
	}
}

// Stats 返回每个主题当前的订阅数
func (b *Bus) Stats() map[Topic]int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stats := make(map[Topic]int, len(b.subscribers))
	for topic, clients := range b.subscribers {
		stats[topic] = len(clients)
	}
	return stats
}
