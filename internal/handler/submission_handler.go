package handler

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/wems/internal/content"
	"github.com/wems/internal/localdb"
)

// ListSubmissions 按时间倒序返回联系表单留言
func (a *API) ListSubmissions(c *gin.Context) {
	list := a.store.LoadContactSubmissions(c.Request.Context(), []content.ContactFormSubmission{})
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Timestamp > list[j].Timestamp
	})

	if raw := c.Query("status"); raw != "" {
		status, err := content.ParseStatus(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "无效的状态")
			return
		}
		filtered := list[:0]
		for _, item := range list {
			if item.Status == status {
				filtered = append(filtered, item)
			}
		}
		list = filtered
	}

	c.JSON(http.StatusOK, list)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateSubmissionStatus 修改留言状态
func (a *API) UpdateSubmissionStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req, "请提供状态") {
		return
	}
	status, err := content.ParseStatus(req.Status)
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的状态")
		return
	}

	if err := a.store.UpdateContactSubmissionStatus(c.Request.Context(), c.Param("id"), status); err != nil {
		respondSubmissionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": status})
}

// DeleteSubmission 删除留言
func (a *API) DeleteSubmission(c *gin.Context) {
	if err := a.store.DeleteContactSubmission(c.Request.Context(), c.Param("id")); err != nil {
		respondSubmissionError(c, err)
		return
	}
	respondSuccess(c, "留言已删除")
}

func respondSubmissionError(c *gin.Context, err error) {
	if errors.Is(err, localdb.ErrSubmissionNotFound) {
		respondError(c, http.StatusNotFound, "留言不存在")
		return
	}
	respondSaveError(c, err)
}
