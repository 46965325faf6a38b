package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wems/internal/content"
	"github.com/wems/internal/service"
)

type aboutResponse struct {
	content.AboutData
	ContentHTML string `json:"contentHtml"`
}

// GetAbout 返回关于我们，正文额外渲染为 HTML
func (a *API) GetAbout(c *gin.Context) {
	about := a.store.LoadAboutData(c.Request.Context(), content.DefaultAboutData())
	rendered, err := service.RenderMarkdown(about.Content)
	if err != nil {
		c.Error(err)
	}
	c.JSON(http.StatusOK, aboutResponse{AboutData: about, ContentHTML: rendered})
}

// GetSiteLogo 返回当前 Logo 地址
func (a *API) GetSiteLogo(c *gin.Context) {
	c.JSON(http.StatusOK, content.SiteLogo{URL: a.store.LoadSiteLogo(c.Request.Context(), content.DefaultLogoURL)})
}

// SubmitContact 接收公开联系表单
func (a *API) SubmitContact(c *gin.Context) {
	var input content.SubmissionInput
	if !bindJSON(c, &input, "表单数据格式错误") {
		return
	}

	id, err := a.store.SaveContactSubmission(c.Request.Context(), service.SanitizeSubmission(input))
	if err != nil {
		if errors.Is(err, content.ErrSubmissionInvalid) {
			respondError(c, http.StatusBadRequest, "请填写姓名、邮箱和留言内容")
			return
		}
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "提交失败，请稍后重试")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}

// Healthz 存活检查
func (a *API) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "storage": a.store.Kind()})
}
