package content

// 前台在存储不可用或尚无数据时使用的内置内容。

// DefaultLogoURL 站点默认 Logo
const DefaultLogoURL = "/wems-logo.png"

// DefaultSlides 返回首页轮播的内置幻灯片。
func DefaultSlides() []Slide {
	return []Slide{
		{
			ID:          "slide1",
			Title:       "WEMS IT & Telecom Consulting",
			Subtitle:    "Consultoria, Auditoria em TI e Telecomunicações",
			Description: "Empresa especializada em Consultoria, Auditoria em Tecnologias de Informação e Telecomunicações, apostando na excelência dos serviços prestados.",
			ImageURL:    "https://images.unsplash.com/photo-1581092921461-eab62e97a780?w=1200&q=80",
			ButtonText:  "Nossos Serviços",
			ButtonHref:  "#services",
		},
		{
			ID:          "slide2",
			Title:       "Soluções Personalizadas",
			Subtitle:    "Alinhamento Integral com a Visão dos Clientes",
			Description: "Projetos desenhados a partir das necessidades de cada cliente.",
			ImageURL:    "https://images.unsplash.com/photo-1553877522-43269d4ea984?w=1200&q=80",
			ButtonText:  "Fale Conosco",
			ButtonHref:  "#contact",
		},
	}
}

// DefaultServices 返回内置的服务列表。
func DefaultServices() []Service {
	return []Service{
		{
			ID:           1,
			Title:        "Consultoria",
			Description:  "Consultoria estratégica para otimização de processos e tecnologias",
			Icon:         "Server",
			DetailedInfo: "Nossa consultoria ajuda empresas a otimizar sua infraestrutura tecnológica, melhorar a eficiência e reduzir custos.",
			Features: []string{
				"Levantamento de Requisitos",
				"Análise Funcional",
				"Reengenharia de Processos",
				"Formação e Gestão Documental",
			},
		},
		{
			ID:           2,
			Title:        "Desenvolvimento de Software",
			Description:  "Soluções personalizadas para gestão documental e web",
			Icon:         "Code",
			DetailedInfo: "Desenvolvemos software personalizado para gestão documental, páginas web e soluções de email corporativo.",
			Features:     []string{"Gestão Documental", "Páginas Web", "Email Corporativo"},
		},
	}
}

// DefaultContactData 返回内置的联系页文案。
func DefaultContactData() ContactData {
	return ContactData{
		Title:    "Entre em Contato",
		Subtitle: "Estamos prontos para ajudar sua empresa a crescer",
		ContactInfo: ContactInfo{
			Address: "Rua Comandante Gika, Edifício Garden Towers, Torre B, 9º andar, Luanda, Angola",
			Email:   "info@wems.co.ao",
			Phone:   "+244 923 456 789",
		},
	}
}

// DefaultAboutData 返回内置的关于页文案。
func DefaultAboutData() AboutData {
	return AboutData{
		Title:    "Sobre Nós",
		Subtitle: "25 anos de experiência no mercado angolano",
		Content:  "A **WEMS** é uma empresa especializada em Consultoria e Auditoria em Tecnologias de Informação e Telecomunicações.",
	}
}

// DefaultMissionVisionData 返回内置的使命与愿景。
func DefaultMissionVisionData() MissionVisionData {
	return MissionVisionData{
		Mission: Statement{Title: "Missão", Content: "Prestar serviços de excelência em TI e Telecomunicações."},
		Vision:  Statement{Title: "Visão", Content: "Ser referência em consultoria tecnológica em Angola."},
	}
}

// DefaultSiteSettings 返回内置的站点设置。
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{SiteName: "WEMS", LogoURL: DefaultLogoURL}
}
