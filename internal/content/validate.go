package content

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNoSlides 轮播图至少需要保留一张
	ErrNoSlides = errors.New("at least one slide must remain")
	// ErrDuplicateID 集合中存在重复 ID
	ErrDuplicateID = errors.New("duplicate id")
	// ErrMissingID 集合元素缺少 ID
	ErrMissingID = errors.New("missing id")
	// ErrUnknownIcon 服务图标不在已知列表中
	ErrUnknownIcon = errors.New("unknown service icon")
)

// KnownIcons 是服务卡片可用的图标名称。
var KnownIcons = []string{"Server", "Code", "Shield", "Network", "Database", "Mail", "Laptop", "Radio", "Lock"}

// IsKnownIcon 判断图标名称是否可用。
func IsKnownIcon(name string) bool {
	for _, icon := range KnownIcons {
		if icon == name {
			return true
		}
	}
	return false
}

// ValidateSlides 要求至少一张幻灯片且 ID 唯一。
func ValidateSlides(slides []Slide) error {
	if len(slides) == 0 {
		return ErrNoSlides
	}
	return uniqueStrings("slide", len(slides), func(i int) string { return slides[i].ID })
}

// ValidatePartners 要求合作伙伴 ID 唯一。
func ValidatePartners(partners []Partner) error {
	return uniqueInts("partner", len(partners), func(i int) int { return partners[i].ID })
}

// ValidateServices 要求服务 ID 唯一且图标可识别。
func ValidateServices(services []Service) error {
	for _, svc := range services {
		if !IsKnownIcon(svc.Icon) {
			return fmt.Errorf("%w: %q (service %d)", ErrUnknownIcon, svc.Icon, svc.ID)
		}
	}
	return uniqueInts("service", len(services), func(i int) int { return services[i].ID })
}

// ValidateClientCategories 要求分类 ID 唯一。
func ValidateClientCategories(categories []ClientCategory) error {
	return uniqueStrings("client category", len(categories), func(i int) string { return categories[i].ID })
}

// ValidateImages 要求图片 ID 唯一。
func ValidateImages(images []Image) error {
	return uniqueInts("image", len(images), func(i int) int { return images[i].ID })
}

// NextID 返回集合中最大 ID 加一，空集合返回 1。
func NextID(ids []int) int {
	next := 1
	for _, id := range ids {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

func uniqueStrings(kind string, n int, at func(int) string) error {
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := strings.TrimSpace(at(i))
		if id == "" {
			return fmt.Errorf("%w: %s at position %d", ErrMissingID, kind, i)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s %q", ErrDuplicateID, kind, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func uniqueInts(kind string, n int, at func(int) int) error {
	return uniqueStrings(kind, n, func(i int) string { return strconv.Itoa(at(i)) })
}
