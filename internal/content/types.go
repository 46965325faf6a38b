package content

// Slide 首页轮播图中的一张幻灯片。
type Slide struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	ButtonText  string `json:"buttonText,omitempty"`
	ButtonHref  string `json:"buttonHref,omitempty"`
}

// Partner 合作伙伴
type Partner struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Logo        string `json:"logo"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
}

// Service 描述对外提供的一项服务，Icon 必须是 KnownIcons 之一。
type Service struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Icon         string   `json:"icon"`
	DetailedInfo string   `json:"detailedInfo"`
	Features     []string `json:"features"`
	Order        *int     `json:"order,omitempty"`
	IsActive     *bool    `json:"isActive,omitempty"`
}

// Client 属于某个客户分类的客户。
type Client struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Logo        string `json:"logo"`
	Description string `json:"description"`
	Website     string `json:"website,omitempty"`
	Industry    string `json:"industry,omitempty"`
}

// ClientCategory 是客户的两级聚合，分类是持久化的最小单元。
type ClientCategory struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Clients []Client `json:"clients"`
	Order   *int     `json:"order,omitempty"`
}

// Image 图片库中的一张图片。
type Image struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	Section    string `json:"section"`
	UploadedAt string `json:"uploadedAt"`
	AltText    string `json:"altText,omitempty"`
	Size       int64  `json:"size,omitempty"`
}

// ContactInfo 联系页中的联系方式。
type ContactInfo struct {
	Address      string `json:"address"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	MapIframe    string `json:"mapIframe"`
	WhatsApp     string `json:"whatsapp,omitempty"`
	WorkingHours string `json:"workingHours,omitempty"`
}

// ContactData 联系页文案（单例）。
type ContactData struct {
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle"`
	ContactInfo ContactInfo `json:"contactInfo"`
}

// Stat 关于页中展示的一组统计数字。
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// AboutData 关于页文案（单例），Content 为 markdown。
type AboutData struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
	Stats    []Stat `json:"stats,omitempty"`
}

// Statement 使命或愿景段落。
type Statement struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// CompanyValue 企业价值观条目。
type CompanyValue struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

// MissionVisionData 使命与愿景（单例）。
type MissionVisionData struct {
	Mission Statement      `json:"mission"`
	Vision  Statement      `json:"vision"`
	Values  []CompanyValue `json:"values,omitempty"`
}

// SocialLinks 站点社交链接。
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// MetaTags SEO 元信息。
type MetaTags struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

// SiteSettings 站点级设置（单例）。
type SiteSettings struct {
	SiteName       string       `json:"siteName"`
	LogoURL        string       `json:"logoUrl"`
	Favicon        string       `json:"favicon,omitempty"`
	PrimaryColor   string       `json:"primaryColor,omitempty"`
	SecondaryColor string       `json:"secondaryColor,omitempty"`
	SocialLinks    *SocialLinks `json:"socialLinks,omitempty"`
	MetaTags       *MetaTags    `json:"metaTags,omitempty"`
}

// SiteLogo 站点 Logo（单例）。
type SiteLogo struct {
	URL string `json:"url"`
}
