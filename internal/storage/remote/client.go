package remote

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wems/internal/content"
	"github.com/wems/internal/db"
	"github.com/wems/internal/storage"
)

// Client 远程关系库后端，每个分区一张表 (id, position, payload jsonb)。
// 连接串为空时处于未配置状态，所有读写返回 storage.ErrNotConfigured。
type Client struct {
	pool *pgxpool.Pool
}

// New 连接远程库并创建分区表。dsn 为空时返回未配置的客户端。
func New(ctx context.Context, dsn string) (*Client, error) {
	if strings.TrimSpace(dsn) == "" {
		log.Printf("[remote] no database url configured, remote backend disabled")
		return &Client{}, nil
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	c := &Client{pool: pool}
	if err := c.ensureTables(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return c, nil
}

// Close 关闭连接池
func (c *Client) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}

// Configured 表示是否已配置远程连接
func (c *Client) Configured() bool {
	return c.pool != nil
}

// Kind 实现 storage.Backend
func (c *Client) Kind() storage.Kind {
	return storage.KindServer
}

// Ping 检查连接是否可用
func (c *Client) Ping(ctx context.Context) error {
	if !c.Configured() {
		return storage.ErrNotConfigured
	}
	return c.pool.Ping(ctx)
}

func tableName(section content.Section) string {
	return pgx.Identifier{section.Table}.Sanitize()
}

func (c *Client) ensureTables(ctx context.Context) error {
	for _, section := range content.Sections() {
		stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL DEFAULT 0,
	payload JSONB NOT NULL
)`, tableName(section))
		if _, err := c.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create table %s: %w", section.Table, err)
		}
	}
	return nil
}

// SaveSection 实现 storage.Backend。
// 集合在一个事务内删除后批量插入；单例按固定 id 覆盖写入。
func (c *Client) SaveSection(ctx context.Context, section content.Section, payload []byte) error {
	if !c.Configured() {
		return storage.ErrNotConfigured
	}

	if section.Singleton {
		compact, err := storage.Compact(payload)
		if err != nil {
			return fmt.Errorf("section %s: %w", section.Name, err)
		}
		stmt := fmt.Sprintf(`INSERT INTO %s (id, position, payload) VALUES ($1, 0, $2)
ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload`, tableName(section))
		if _, err := c.pool.Exec(ctx, stmt, db.SingletonKey, string(compact)); err != nil {
			return fmt.Errorf("upsert %s: %w", section.Table, err)
		}
		return nil
	}

	items, err := storage.SplitArray(payload)
	if err != nil {
		return fmt.Errorf("section %s: %w", section.Name, err)
	}

	batch := &pgx.Batch{}
	insert := fmt.Sprintf(`INSERT INTO %s (id, position, payload) VALUES ($1, $2, $3)`, tableName(section))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		key, err := storage.ItemKey(item)
		if err != nil {
			return fmt.Errorf("section %s item %d: %w", section.Name, i, err)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("section %s: %w: %s", section.Name, content.ErrDuplicateID, key)
		}
		seen[key] = struct{}{}
		batch.Queue(insert, key, i, string(item))
	}

	return pgx.BeginFunc(ctx, c.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, tableName(section))); err != nil {
			return fmt.Errorf("clear %s: %w", section.Table, err)
		}
		if batch.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert %s: %w", section.Table, err)
		}
		return nil
	})
}

// LoadSection 实现 storage.Backend
func (c *Client) LoadSection(ctx context.Context, section content.Section) ([]byte, error) {
	if !c.Configured() {
		return nil, storage.ErrNotConfigured
	}

	rows, err := c.pool.Query(ctx, fmt.Sprintf(`SELECT payload::text FROM %s ORDER BY position ASC, id ASC`, tableName(section)))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", section.Table, err)
	}
	payloads, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", section.Table, err)
	}
	if len(payloads) == 0 {
		return nil, storage.ErrNotFound
	}

	if section.Singleton {
		return []byte(payloads[0]), nil
	}
	items := make([][]byte, 0, len(payloads))
	for _, payload := range payloads {
		items = append(items, []byte(payload))
	}
	return storage.JoinArray(items), nil
}

// AppendItem 实现 storage.ItemWriter
func (c *Client) AppendItem(ctx context.Context, section content.Section, item []byte) error {
	if !c.Configured() {
		return storage.ErrNotConfigured
	}
	key, err := storage.ItemKey(item)
	if err != nil {
		return err
	}

	stmt := fmt.Sprintf(`INSERT INTO %[1]s (id, position, payload)
SELECT $1, COALESCE(MAX(position), -1) + 1, $2 FROM %[1]s
ON CONFLICT (id) DO NOTHING`, tableName(section))
	tag, err := c.pool.Exec(ctx, stmt, key, string(item))
	if err != nil {
		return fmt.Errorf("append %s: %w", section.Table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", content.ErrDuplicateID, key)
	}
	return nil
}

// UpdateItemField 实现 storage.ItemWriter，使用 jsonb_set 修改单个字段。
// 字段值按字符串写入
func (c *Client) UpdateItemField(ctx context.Context, section content.Section, id, field string, value any) error {
	if !c.Configured() {
		return storage.ErrNotConfigured
	}

	stmt := fmt.Sprintf(`UPDATE %s SET payload = jsonb_set(payload, $2::text[], to_jsonb($3::text)) WHERE id = $1`, tableName(section))
	tag, err := c.pool.Exec(ctx, stmt, id, []string{field}, fmt.Sprint(value))
	if err != nil {
		return fmt.Errorf("update %s: %w", section.Table, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteItem 实现 storage.ItemWriter
func (c *Client) DeleteItem(ctx context.Context, section content.Section, id string) error {
	if !c.Configured() {
		return storage.ErrNotConfigured
	}

	tag, err := c.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, tableName(section)), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", section.Table, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
