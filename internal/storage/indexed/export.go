package indexed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/tidwall/gjson"

	"github.com/wems/internal/content"
	"github.com/wems/internal/notify"
	"github.com/wems/internal/storage"
)

// VersionField 导出文档中记录结构版本的字段
const VersionField = "dbVersion"

// BackupFilename 返回导出文件名，形如 wems_data_backup_2025-03-01.json
func BackupFilename(now time.Time) string {
	return fmt.Sprintf("wems_data_backup_%s.json", now.Format("2006-01-02"))
}

// Export 把所有分区导出为一个 JSON 文档，单例分区导出为单元素数组。
func (s *Store) Export(ctx context.Context) ([]byte, error) {
	doc := make(map[string]any, len(content.Sections())+1)
	for _, section := range content.Sections() {
		rows, err := s.rows(ctx, section)
		if err != nil {
			return nil, err
		}
		items := make([]json.RawMessage, 0, len(rows))
		for _, row := range rows {
			items = append(items, json.RawMessage(row.Payload))
		}
		doc[section.Name] = items
	}

	version, err := s.Version(ctx)
	if err != nil {
		return nil, err
	}
	doc[VersionField] = version

	return json.MarshalIndent(doc, "", "  ")
}

// ImportReport 记录导入结果
type ImportReport struct {
	Imported []string          `json:"imported"`
	Failed   map[string]string `json:"failed,omitempty"`
}

// Import 从导出文档恢复数据。每个分区独立替换，某个分区失败不影响其它分区。
// 成功的分区同时写回键值存储，完成后广播 data-imported 事件。
func (s *Store) Import(ctx context.Context, data []byte) (ImportReport, error) {
	report := ImportReport{Failed: make(map[string]string)}
	if !gjson.ValidBytes(data) {
		return report, errors.New("invalid backup document")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return report, errors.New("backup document must be a json object")
	}

	for _, section := range content.Sections() {
		value := doc.Get(section.Name)
		if !value.Exists() {
			continue
		}
		if err := s.importSection(ctx, section, value); err != nil {
			log.Printf("[indexed] import %s failed: %v", section.Table, err)
			report.Failed[section.Table] = err.Error()
			continue
		}
		report.Imported = append(report.Imported, section.Table)
	}

	if len(report.Imported) > 0 && s.notifier != nil {
		s.notifier.Publish(notify.Event{Topic: notify.TopicDataImported})
	}
	return report, nil
}

func (s *Store) importSection(ctx context.Context, section content.Section, value gjson.Result) error {
	if !section.Singleton {
		if !value.IsArray() {
			return storage.ErrNotArray
		}
		payload, err := storage.Compact([]byte(value.Raw))
		if err != nil {
			return err
		}
		if err := s.SaveSection(ctx, section, payload); err != nil {
			return err
		}
		return s.kv.Put(ctx, section.LegacyKey, payload)
	}

	record := value
	if value.IsArray() {
		elements := value.Array()
		if len(elements) == 0 {
			if err := s.ClearSection(ctx, section); err != nil {
				return err
			}
			return s.kv.Delete(ctx, section.LegacyKey)
		}
		record = elements[0]
	}
	if !record.IsObject() {
		return fmt.Errorf("section %s expects an object", section.Name)
	}

	payload, err := storage.Compact([]byte(record.Raw))
	if err != nil {
		return err
	}
	if err := s.SaveSection(ctx, section, payload); err != nil {
		return err
	}
	return s.kv.Put(ctx, section.LegacyKey, payload)
}
