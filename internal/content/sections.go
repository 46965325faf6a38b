package content

// Section 描述一个持久化分区在各个后端中的名称。
//   - Name 用于 JSON 文件服务的顶层字段与导出文档
//   - Table 用于本地索引库与远程库的表名
//   - LegacyKey 是键值存储中的命名空间键
type Section struct {
	Name      string
	Table     string
	LegacyKey string
	Singleton bool
}

var (
	SectionSlides             = Section{Name: "slides", Table: "slides", LegacyKey: "wems_slides"}
	SectionPartners           = Section{Name: "partners", Table: "partners", LegacyKey: "wems_partners"}
	SectionServices           = Section{Name: "services", Table: "services", LegacyKey: "wems_services"}
	SectionClientCategories   = Section{Name: "clientCategories", Table: "client_categories", LegacyKey: "wems_client_categories"}
	SectionImages             = Section{Name: "images", Table: "images", LegacyKey: "wems_images"}
	SectionContact            = Section{Name: "contact", Table: "contact", LegacyKey: "wems_contact", Singleton: true}
	SectionAbout              = Section{Name: "about", Table: "about", LegacyKey: "wems_about", Singleton: true}
	SectionMissionVision      = Section{Name: "missionVision", Table: "mission_vision", LegacyKey: "wems_mission_vision", Singleton: true}
	SectionSiteSettings       = Section{Name: "siteSettings", Table: "site_settings", LegacyKey: "wems_site_settings", Singleton: true}
	SectionSiteLogo           = Section{Name: "siteLogo", Table: "site_logo", LegacyKey: "wems_site_logo", Singleton: true}
	SectionContactSubmissions = Section{Name: "contactSubmissions", Table: "contact_submissions", LegacyKey: "wems_contact_submissions"}
)

// Sections 按迁移与导出顺序列出全部分区。
func Sections() []Section {
	return []Section{
		SectionSlides,
		SectionPartners,
		SectionServices,
		SectionClientCategories,
		SectionImages,
		SectionContact,
		SectionAbout,
		SectionMissionVision,
		SectionSiteSettings,
		SectionSiteLogo,
		SectionContactSubmissions,
	}
}

// SectionByName 根据导出名称查找分区。
func SectionByName(name string) (Section, bool) {
	for _, section := range Sections() {
		if section.Name == name {
			return section, true
		}
	}
	return Section{}, false
}
