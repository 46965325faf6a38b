package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/wems/internal/content"
)

// Kind 标识一种具体的存储后端，取值是封闭集合。
type Kind string

const (
	// KindLocal 本地索引库
	KindLocal Kind = "local"
	// KindServer 远程关系库
	KindServer Kind = "server"
	// KindJSONFile JSON 文件服务
	KindJSONFile Kind = "jsonFile"
	// KindKeyValue 旧版键值存储
	KindKeyValue Kind = "keyValue"
)

// DefaultKind 尚未设置存储偏好时使用的后端
const DefaultKind = KindJSONFile

// PreferenceKey 存储偏好在键值存储中的键
const PreferenceKey = "wems_storage_type"

var (
	// ErrNotFound 后端中没有该分区的数据
	ErrNotFound = errors.New("section not found")
	// ErrNotConfigured 后端缺少连接配置
	ErrNotConfigured = errors.New("backend not configured")
	// ErrUnknownKind 无法识别的存储类型
	ErrUnknownKind = errors.New("unknown storage kind")
)

// Backend 以分区为单位读写整段 JSON。
// LoadSection 在没有数据时返回 ErrNotFound；SaveSection 是整体替换。
type Backend interface {
	Kind() Kind
	SaveSection(ctx context.Context, section content.Section, payload []byte) error
	LoadSection(ctx context.Context, section content.Section) ([]byte, error)
}

// ItemWriter 是支持按行操作集合分区的后端可选实现的接口。
// 不支持的后端由调用方退化为读取-修改-整体写回。
type ItemWriter interface {
	AppendItem(ctx context.Context, section content.Section, item []byte) error
	UpdateItemField(ctx context.Context, section content.Section, id, field string, value any) error
	DeleteItem(ctx context.Context, section content.Section, id string) error
}

// PreferenceStore 保存存储偏好的最小接口，由键值存储实现。
type PreferenceStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Kinds 返回全部存储类型
func Kinds() []Kind {
	return []Kind{KindLocal, KindServer, KindJSONFile, KindKeyValue}
}

// ParseKind 严格解析存储类型。
func ParseKind(raw string) (Kind, error) {
	trimmed := strings.TrimSpace(raw)
	for _, kind := range Kinds() {
		if string(kind) == trimmed {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
}

// ResolveKind 读取持久化的存储偏好。
// 未设置时写入并返回 DefaultKind；无法识别的值按 KindLocal 处理。
func ResolveKind(ctx context.Context, prefs PreferenceStore) Kind {
	raw, err := prefs.Get(ctx, PreferenceKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[storage] read preference failed: %v", err)
			return DefaultKind
		}
		if err := prefs.Put(ctx, PreferenceKey, []byte(DefaultKind)); err != nil {
			log.Printf("[storage] persist default preference failed: %v", err)
		}
		return DefaultKind
	}

	kind, err := ParseKind(string(raw))
	if err != nil {
		return KindLocal
	}
	return kind
}

// SetPreference 校验并持久化新的存储偏好，下次启动时生效。
func SetPreference(ctx context.Context, prefs PreferenceStore, raw string) (Kind, error) {
	kind, err := ParseKind(raw)
	if err != nil {
		return "", err
	}
	if err := prefs.Put(ctx, PreferenceKey, []byte(kind)); err != nil {
		return "", fmt.Errorf("persist storage preference: %w", err)
	}
	return kind, nil
}
