package indexed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/wems/internal/content"
	"github.com/wems/internal/storage"
)

// MigrationFlagKey 全部旧数据迁移完成后写入键值存储的标记
const MigrationFlagKey = "wems_migration_completed"

// MigrationReport 记录一次迁移的结果
type MigrationReport struct {
	Skipped  bool              `json:"skipped"`
	Migrated []string          `json:"migrated"`
	Empty    []string          `json:"empty"`
	Failed   map[string]string `json:"failed,omitempty"`
}

// Completed 表示所有表都已迁移
func (r MigrationReport) Completed() bool {
	return len(r.Failed) == 0
}

func tableFlagKey(section content.Section) string {
	return MigrationFlagKey + ":" + section.Table
}

// MigrateLegacy 把键值存储中的旧数据导入各分区表。
// 每张表成功后单独记录标记，下次只重试失败的表；全部成功才写入总标记。
func (s *Store) MigrateLegacy(ctx context.Context) (MigrationReport, error) {
	report := MigrationReport{Failed: make(map[string]string)}
	if s.flagSet(ctx, MigrationFlagKey) {
		report.Skipped = true
		return report, nil
	}

	for _, section := range content.Sections() {
		if s.flagSet(ctx, tableFlagKey(section)) {
			continue
		}

		raw, err := s.kv.Get(ctx, section.LegacyKey)
		if errors.Is(err, storage.ErrNotFound) || (err == nil && storage.IsEmptyValue(raw)) {
			report.Empty = append(report.Empty, section.Table)
			continue
		}
		if err == nil {
			err = s.SaveSection(ctx, section, raw)
		}
		if err != nil {
			log.Printf("[migrate] %s failed: %v", section.LegacyKey, err)
			report.Failed[section.Table] = err.Error()
			continue
		}

		if err := s.kv.Put(ctx, tableFlagKey(section), []byte("true")); err != nil {
			return report, fmt.Errorf("mark %s migrated: %w", section.Table, err)
		}
		report.Migrated = append(report.Migrated, section.Table)
		log.Printf("[migrate] migrated %s", section.LegacyKey)
	}

	if report.Completed() {
		if err := s.kv.Put(ctx, MigrationFlagKey, []byte("true")); err != nil {
			return report, fmt.Errorf("mark migration completed: %w", err)
		}
	}
	return report, nil
}

func (s *Store) flagSet(ctx context.Context, key string) bool {
	raw, err := s.kv.Get(ctx, key)
	return err == nil && string(raw) == "true"
}
