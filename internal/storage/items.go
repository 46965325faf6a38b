package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrNotArray 集合分区的载荷不是 JSON 数组
	ErrNotArray = errors.New("payload is not a json array")
	// ErrMissingItemID 集合元素缺少 id 字段
	ErrMissingItemID = errors.New("item has no id")
)

// SplitArray 将集合载荷拆分为各个元素的原始 JSON。
func SplitArray(payload []byte) ([][]byte, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("invalid json payload")
	}
	result := gjson.ParseBytes(payload)
	if !result.IsArray() {
		return nil, ErrNotArray
	}

	elements := result.Array()
	items := make([][]byte, 0, len(elements))
	for _, element := range elements {
		items = append(items, []byte(element.Raw))
	}
	return items, nil
}

// JoinArray 把元素原始 JSON 拼回一个数组。
func JoinArray(items [][]byte) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(item)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

// ItemKey 读取元素的 id 字段并转成字符串主键，数字 id 按十进制表示。
func ItemKey(item []byte) (string, error) {
	id := gjson.GetBytes(item, "id")
	if !id.Exists() || id.Type == gjson.Null {
		return "", ErrMissingItemID
	}
	key := strings.TrimSpace(id.String())
	if key == "" {
		return "", ErrMissingItemID
	}
	return key, nil
}

// IsEmptyValue 判断载荷是否为空数组、空对象或 null。
func IsEmptyValue(payload []byte) bool {
	result := gjson.ParseBytes(payload)
	switch {
	case result.Type == gjson.Null:
		return true
	case result.IsArray():
		return len(result.Array()) == 0
	case result.IsObject():
		empty := true
		result.ForEach(func(_, _ gjson.Result) bool {
			empty = false
			return false
		})
		return empty
	}
	return false
}

// Compact 去掉 JSON 中的多余空白。
func Compact(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, payload); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
