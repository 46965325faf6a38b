package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wems/internal/content"
	"github.com/wems/internal/service"
)

// UploadSiteLogo 上传并启用新的站点 Logo
func (a *API) UploadSiteLogo(c *gin.Context) {
	// 获取上传的文件
	file, err := c.FormFile("logo")
	if err != nil {
		respondError(c, http.StatusBadRequest, "未找到上传的图片")
		return
	}

	stored, ok := a.saveUpload(c, file)
	if !ok {
		return
	}

	if err := a.store.SaveSiteLogo(c.Request.Context(), stored.URL); err != nil {
		respondSaveError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "上传成功", "url": stored.URL})
}

// UploadImage 上传图片并登记到图片库
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "未找到上传的图片")
		return
	}

	stored, ok := a.saveUpload(c, file)
	if !ok {
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		name = file.Filename
	}
	image, err := a.store.AppendImage(c.Request.Context(), content.Image{
		Name:       name,
		URL:        stored.URL,
		Section:    strings.TrimSpace(c.PostForm("section")),
		UploadedAt: a.now().UTC().Format(time.RFC3339),
		AltText:    strings.TrimSpace(c.PostForm("altText")),
		Size:       stored.Size,
	})
	if err != nil {
		respondSaveError(c, err)
		return
	}
	c.JSON(http.StatusCreated, image)
}

func (a *API) saveUpload(c *gin.Context, file *multipart.FileHeader) (*service.StoredImage, bool) {
	stored, err := a.uploads.Save(file)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedImage) {
			respondError(c, http.StatusBadRequest, "只允许上传 PNG、JPEG、GIF 或 WebP 图片")
			return nil, false
		}
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "保存文件失败")
		return nil, false
	}
	return stored, true
}
