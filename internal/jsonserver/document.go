package jsonserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Document 是磁盘上的单个 JSON 文件，顶层字段即各个分区。
// 每次读取都直接访问文件；写入先落到临时文件再重命名替换。
type Document struct {
	path string
	mu   sync.Mutex
}

// NewDocument 创建指向 path 的文档
func NewDocument(path string) *Document {
	return &Document{path: path}
}

// Path 返回文件路径
func (d *Document) Path() string {
	return d.path
}

// Read 读取整个文档。文件不存在时返回空文档。
func (d *Document) Read() (map[string]json.RawMessage, error) {
	raw, err := os.ReadFile(d.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", d.path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", d.path, err)
	}
	return doc, nil
}

// Section 读取一个顶层字段，不存在时 ok 为 false。
func (d *Document) Section(name string) (json.RawMessage, bool, error) {
	doc, err := d.Read()
	if err != nil {
		return nil, false, err
	}
	value, ok := doc[name]
	return value, ok, nil
}

// PutSection 替换一个顶层字段并写回整个文档。
func (d *Document) PutSection(name string, value json.RawMessage) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	doc, err := d.Read()
	if err != nil {
		return err
	}
	doc[name] = value
	return d.write(doc)
}

// Replace 用新的文档整体替换文件内容
func (d *Document) Replace(doc map[string]json.RawMessage) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.write(doc)
}

func (d *Document) write(doc map[string]json.RawMessage) error {
	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(encoded); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, d.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", d.path, err)
	}
	return nil
}
