package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wems/internal/content"
	"github.com/wems/internal/storage"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseIntParam(c *gin.Context, key string) (int, error) {
	raw := c.Param(key)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return id, nil
}

// isValidationError 判断保存失败是否由内容校验引起
func isValidationError(err error) bool {
	return errors.Is(err, content.ErrNoSlides) ||
		errors.Is(err, content.ErrDuplicateID) ||
		errors.Is(err, content.ErrMissingID) ||
		errors.Is(err, content.ErrUnknownIcon) ||
		errors.Is(err, content.ErrInvalidStatus) ||
		errors.Is(err, content.ErrSubmissionInvalid) ||
		errors.Is(err, storage.ErrMissingItemID)
}

func respondSaveError(c *gin.Context, err error) {
	if isValidationError(err) {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if errors.Is(err, storage.ErrNotConfigured) {
		respondError(c, http.StatusServiceUnavailable, "远程数据库未配置")
		return
	}
	c.Error(err)
	respondError(c, http.StatusInternalServerError, "保存失败")
}
