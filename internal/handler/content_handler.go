package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wems/internal/content"
	"github.com/wems/internal/localdb"
)

// SectionRoute 描述一个内容分区的读写接口
type SectionRoute struct {
	Path string
	Get  gin.HandlerFunc
	Put  gin.HandlerFunc
}

func loadHandler[T any](load func(context.Context, T) T, def func() T) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, load(c.Request.Context(), def()))
	}
}

func saveHandler[T any](save func(context.Context, T) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		var value T
		if !bindJSON(c, &value, "请求数据格式错误") {
			return
		}
		if err := save(c.Request.Context(), value); err != nil {
			respondSaveError(c, err)
			return
		}
		c.JSON(http.StatusOK, value)
	}
}

func emptySlice[T any]() func() []T {
	return func() []T { return []T{} }
}

// SectionRoutes 返回所有内容分区的路由，公开站点只注册 Get。
func (a *API) SectionRoutes() []SectionRoute {
	return []SectionRoute{
		{
			Path: "/slides",
			Get:  loadHandler(a.store.LoadSlides, content.DefaultSlides),
			Put:  saveHandler(a.store.SaveSlides),
		},
		{
			Path: "/partners",
			Get:  loadHandler(a.store.LoadPartners, emptySlice[content.Partner]()),
			Put:  saveHandler(a.store.SavePartners),
		},
		{
			Path: "/services",
			Get:  loadHandler(a.store.LoadServices, content.DefaultServices),
			Put:  saveHandler(a.store.SaveServices),
		},
		{
			Path: "/client-categories",
			Get:  loadHandler(a.store.LoadClientCategories, emptySlice[content.ClientCategory]()),
			Put:  saveHandler(a.store.SaveClientCategories),
		},
		{
			Path: "/contact",
			Get:  loadHandler(a.store.LoadContactData, content.DefaultContactData),
			Put:  saveHandler(a.store.SaveContactData),
		},
		{
			Path: "/about",
			Get:  a.GetAbout,
			Put:  saveHandler(a.store.SaveAboutData),
		},
		{
			Path: "/mission-vision",
			Get:  loadHandler(a.store.LoadMissionVisionData, content.DefaultMissionVisionData),
			Put:  saveHandler(a.store.SaveMissionVisionData),
		},
		{
			Path: "/site-settings",
			Get:  loadHandler(a.store.LoadSiteSettings, content.DefaultSiteSettings),
			Put:  saveHandler(a.store.SaveSiteSettings),
		},
	}
}

// ListImages 返回图片库
func (a *API) ListImages(c *gin.Context) {
	c.JSON(http.StatusOK, a.store.LoadImages(c.Request.Context(), []content.Image{}))
}

// SaveImages 整体保存图片库元数据
func (a *API) SaveImages(c *gin.Context) {
	saveHandler(a.store.SaveImages)(c)
}

// DeleteImage 从图片库删除一条记录，磁盘文件保留
func (a *API) DeleteImage(c *gin.Context) {
	id, err := parseIntParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的图片ID")
		return
	}

	if err := a.store.DeleteImage(c.Request.Context(), id); err != nil {
		if errors.Is(err, localdb.ErrImageNotFound) {
			respondError(c, http.StatusNotFound, "图片不存在")
			return
		}
		respondSaveError(c, err)
		return
	}
	respondSuccess(c, "图片已删除")
}
