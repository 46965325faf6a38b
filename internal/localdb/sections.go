package localdb

import (
	"context"

	"github.com/wems/internal/content"
	"github.com/wems/internal/notify"
)

// SaveSlides 保存轮播图，至少保留一张
func (s *Store) SaveSlides(ctx context.Context, slides []content.Slide) error {
	if err := content.ValidateSlides(slides); err != nil {
		return err
	}
	return saveSection(ctx, s, content.SectionSlides, slides)
}

// LoadSlides 读取轮播图
func (s *Store) LoadSlides(ctx context.Context, def []content.Slide) []content.Slide {
	return loadSection(ctx, s, content.SectionSlides, def)
}

// SavePartners 保存合作伙伴，id 不可重复
func (s *Store) SavePartners(ctx context.Context, partners []content.Partner) error {
	if err := content.ValidatePartners(partners); err != nil {
		return err
	}
	return saveSection(ctx, s, content.SectionPartners, partners)
}

// LoadPartners 读取合作伙伴
func (s *Store) LoadPartners(ctx context.Context, def []content.Partner) []content.Partner {
	return loadSection(ctx, s, content.SectionPartners, def)
}

// SaveServices 保存服务列表并校验图标
func (s *Store) SaveServices(ctx context.Context, services []content.Service) error {
	if err := content.ValidateServices(services); err != nil {
		return err
	}
	return saveSection(ctx, s, content.SectionServices, services)
}

// LoadServices 读取服务列表
func (s *Store) LoadServices(ctx context.Context, def []content.Service) []content.Service {
	return loadSection(ctx, s, content.SectionServices, def)
}

// SaveClientCategories 保存客户分类
func (s *Store) SaveClientCategories(ctx context.Context, categories []content.ClientCategory) error {
	if err := content.ValidateClientCategories(categories); err != nil {
		return err
	}
	return saveSection(ctx, s, content.SectionClientCategories, categories)
}

// LoadClientCategories 读取客户分类
func (s *Store) LoadClientCategories(ctx context.Context, def []content.ClientCategory) []content.ClientCategory {
	return loadSection(ctx, s, content.SectionClientCategories, def)
}

// SaveImages 保存图片库元数据
func (s *Store) SaveImages(ctx context.Context, images []content.Image) error {
	if err := content.ValidateImages(images); err != nil {
		return err
	}
	return saveSection(ctx, s, content.SectionImages, images)
}

// LoadImages 读取图片库
func (s *Store) LoadImages(ctx context.Context, def []content.Image) []content.Image {
	return loadSection(ctx, s, content.SectionImages, def)
}

// SaveContactData 保存联系方式
func (s *Store) SaveContactData(ctx context.Context, data content.ContactData) error {
	return saveSection(ctx, s, content.SectionContact, data)
}

// LoadContactData 读取联系方式
func (s *Store) LoadContactData(ctx context.Context, def content.ContactData) content.ContactData {
	return loadSection(ctx, s, content.SectionContact, def)
}

// SaveAboutData 保存关于我们
func (s *Store) SaveAboutData(ctx context.Context, data content.AboutData) error {
	return saveSection(ctx, s, content.SectionAbout, data)
}

// LoadAboutData 读取关于我们
func (s *Store) LoadAboutData(ctx context.Context, def content.AboutData) content.AboutData {
	return loadSection(ctx, s, content.SectionAbout, def)
}

// SaveMissionVisionData 保存使命与愿景
func (s *Store) SaveMissionVisionData(ctx context.Context, data content.MissionVisionData) error {
	return saveSection(ctx, s, content.SectionMissionVision, data)
}

// LoadMissionVisionData 读取使命与愿景
func (s *Store) LoadMissionVisionData(ctx context.Context, def content.MissionVisionData) content.MissionVisionData {
	return loadSection(ctx, s, content.SectionMissionVision, def)
}

// SaveSiteSettings 保存站点设置
func (s *Store) SaveSiteSettings(ctx context.Context, settings content.SiteSettings) error {
	return saveSection(ctx, s, content.SectionSiteSettings, settings)
}

// LoadSiteSettings 读取站点设置
func (s *Store) LoadSiteSettings(ctx context.Context, def content.SiteSettings) content.SiteSettings {
	return loadSection(ctx, s, content.SectionSiteSettings, def)
}

// SaveSiteLogo 保存 Logo 地址并广播 logo-updated
func (s *Store) SaveSiteLogo(ctx context.Context, url string) error {
	if err := saveSection(ctx, s, content.SectionSiteLogo, content.SiteLogo{URL: url}); err != nil {
		return err
	}
	s.bus.Publish(notify.Event{Topic: notify.TopicLogoUpdated, Data: url})
	return nil
}

// LoadSiteLogo 返回 Logo 地址，未设置时返回 def
func (s *Store) LoadSiteLogo(ctx context.Context, def string) string {
	logo := loadSection(ctx, s, content.SectionSiteLogo, content.SiteLogo{URL: def})
	if logo.URL == "" {
		return def
	}
	return logo.URL
}
