package localdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/wems/internal/content"
	"github.com/wems/internal/storage"
)

// ErrSubmissionNotFound 指定 id 的留言不存在
var ErrSubmissionNotFound = errors.New("contact submission not found")

var submissions = content.SectionContactSubmissions

// SaveContactSubmission 记录一条新留言并返回其 id
func (s *Store) SaveContactSubmission(ctx context.Context, input content.SubmissionInput) (string, error) {
	submission, err := content.NewSubmission(input, s.now())
	if err != nil {
		return "", err
	}
	item, err := json.Marshal(submission)
	if err != nil {
		return "", fmt.Errorf("encode submission: %w", err)
	}

	if writer, ok := s.backend.(storage.ItemWriter); ok {
		if err := writer.AppendItem(ctx, submissions, item); err != nil {
			return "", err
		}
		return submission.ID, nil
	}

	current, err := s.loadSubmissionsRaw(ctx)
	if err != nil {
		return "", err
	}
	items, err := storage.SplitArray(current)
	if err != nil {
		return "", err
	}
	if err := s.backend.SaveSection(ctx, submissions, storage.JoinArray(append(items, item))); err != nil {
		return "", err
	}
	return submission.ID, nil
}

// LoadContactSubmissions 读取所有留言
func (s *Store) LoadContactSubmissions(ctx context.Context, def []content.ContactFormSubmission) []content.ContactFormSubmission {
	return loadSection(ctx, s, submissions, def)
}

// UpdateContactSubmissionStatus 修改留言状态
func (s *Store) UpdateContactSubmissionStatus(ctx context.Context, id string, status content.SubmissionStatus) error {
	parsed, err := content.ParseStatus(string(status))
	if err != nil {
		return err
	}

	if writer, ok := s.backend.(storage.ItemWriter); ok {
		return notFoundAsSubmission(writer.UpdateItemField(ctx, submissions, id, "status", string(parsed)))
	}

	current, index, err := s.locateSubmission(ctx, id)
	if err != nil {
		return err
	}
	updated, err := sjson.SetBytes(current, strconv.Itoa(index)+".status", string(parsed))
	if err != nil {
		return err
	}
	return s.backend.SaveSection(ctx, submissions, updated)
}

// DeleteContactSubmission 删除一条留言
func (s *Store) DeleteContactSubmission(ctx context.Context, id string) error {
	if writer, ok := s.backend.(storage.ItemWriter); ok {
		return notFoundAsSubmission(writer.DeleteItem(ctx, submissions, id))
	}

	current, index, err := s.locateSubmission(ctx, id)
	if err != nil {
		return err
	}
	updated, err := sjson.DeleteBytes(current, strconv.Itoa(index))
	if err != nil {
		return err
	}
	return s.backend.SaveSection(ctx, submissions, updated)
}

func (s *Store) loadSubmissionsRaw(ctx context.Context) ([]byte, error) {
	return s.loadItemsRaw(ctx, submissions)
}

// loadItemsRaw 读取集合分区的原始数组，尚无数据时返回空数组。
// 与 loadSection 不同，后端错误会原样返回，避免在读失败后用空数组覆盖已有数据。
func (s *Store) loadItemsRaw(ctx context.Context, section content.Section) ([]byte, error) {
	raw, err := s.backend.LoadSection(ctx, section)
	if errors.Is(err, storage.ErrNotFound) {
		return []byte(`[]`), nil
	}
	if err != nil {
		return nil, err
	}
	if !gjson.ParseBytes(raw).IsArray() {
		return []byte(`[]`), nil
	}
	return raw, nil
}

func (s *Store) locateSubmission(ctx context.Context, id string) ([]byte, int, error) {
	current, err := s.loadSubmissionsRaw(ctx)
	if err != nil {
		return nil, 0, err
	}

	index := -1
	for i, value := range gjson.GetBytes(current, "#.id").Array() {
		if value.String() == id {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, 0, ErrSubmissionNotFound
	}
	return current, index, nil
}

func notFoundAsSubmission(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrSubmissionNotFound
	}
	return err
}
