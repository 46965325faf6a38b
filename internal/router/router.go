package router

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/wems/internal/handler"
)

// Options 路由所需的配置
type Options struct {
	SessionSecret string
	UploadDir     string
	UploadURLPath string
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(opts Options, api *handler.API) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, MaxAge: 86400 * 7})
	r.Use(sessions.Sessions("wems_session", store))

	// 上传文件
	uploadURL := "/" + strings.Trim(opts.UploadURLPath, "/")
	if uploadURL != "/" && opts.UploadDir != "" {
		r.Static(uploadURL, opts.UploadDir)
	}

	r.GET("/healthz", api.Healthz)

	sections := api.SectionRoutes()

	// 公开站点接口
	public := r.Group("/api")
	{
		for _, route := range sections {
			public.GET(route.Path, route.Get)
		}
		public.GET("/site-logo", api.GetSiteLogo)
		public.POST("/contact-submissions", api.SubmitContact)
	}

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.POST("/login", api.Login)
		admin.POST("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("/api")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/session", api.CurrentSession)

			for _, route := range sections {
				auth.GET(route.Path, route.Get)
				auth.PUT(route.Path, route.Put)
			}

			auth.GET("/site-logo", api.GetSiteLogo)
			auth.POST("/site-logo/upload", api.UploadSiteLogo)

			auth.GET("/images", api.ListImages)
			auth.PUT("/images", api.SaveImages)
			auth.POST("/images/upload", api.UploadImage)
			auth.DELETE("/images/:id", api.DeleteImage)

			auth.GET("/contact-submissions", api.ListSubmissions)
			auth.PUT("/contact-submissions/:id/status", api.UpdateSubmissionStatus)
			auth.DELETE("/contact-submissions/:id", api.DeleteSubmission)

			auth.GET("/storage", api.GetStorageStatus)
			auth.PUT("/storage", api.UpdateStoragePreference)

			auth.GET("/data/export", api.ExportData)
			auth.POST("/data/import", api.ImportData)
			auth.DELETE("/data", api.ClearData)
		}
	}

	return r
}
