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

// ErrImageNotFound 图片库中没有指定 id 的记录
var ErrImageNotFound = errors.New("image not found")

var imageLibrary = content.SectionImages

// AppendImage 为图片分配新 id 并追加到图片库。
// 读取图片库失败时直接返回错误，不会覆盖已有记录。
func (s *Store) AppendImage(ctx context.Context, image content.Image) (content.Image, error) {
	current, err := s.loadItemsRaw(ctx, imageLibrary)
	if err != nil {
		return content.Image{}, err
	}

	var ids []int
	for _, value := range gjson.GetBytes(current, "#.id").Array() {
		ids = append(ids, int(value.Int()))
	}
	image.ID = content.NextID(ids)

	item, err := json.Marshal(image)
	if err != nil {
		return content.Image{}, fmt.Errorf("encode image: %w", err)
	}

	if writer, ok := s.backend.(storage.ItemWriter); ok {
		if err := writer.AppendItem(ctx, imageLibrary, item); err != nil {
			return content.Image{}, err
		}
		return image, nil
	}

	items, err := storage.SplitArray(current)
	if err != nil {
		return content.Image{}, err
	}
	if err := s.backend.SaveSection(ctx, imageLibrary, storage.JoinArray(append(items, item))); err != nil {
		return content.Image{}, err
	}
	return image, nil
}

// DeleteImage 从图片库删除一条记录
func (s *Store) DeleteImage(ctx context.Context, id int) error {
	key := strconv.Itoa(id)
	if writer, ok := s.backend.(storage.ItemWriter); ok {
		err := writer.DeleteItem(ctx, imageLibrary, key)
		if errors.Is(err, storage.ErrNotFound) {
			return ErrImageNotFound
		}
		return err
	}

	current, err := s.loadItemsRaw(ctx, imageLibrary)
	if err != nil {
		return err
	}
	index := -1
	for i, value := range gjson.GetBytes(current, "#.id").Array() {
		if value.String() == key {
			index = i
			break
		}
	}
	if index < 0 {
		return ErrImageNotFound
	}

	updated, err := sjson.DeleteBytes(current, strconv.Itoa(index))
	if err != nil {
		return err
	}
	return s.backend.SaveSection(ctx, imageLibrary, updated)
}
