package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wems/internal/storage"
)

// GetStorageStatus 返回当前后端、已保存的偏好以及各后端的可用状态
func (a *API) GetStorageStatus(c *gin.Context) {
	ctx := c.Request.Context()

	preference := string(storage.DefaultKind)
	if raw, err := a.kv.Get(ctx, storage.PreferenceKey); err == nil {
		preference = string(raw)
	}

	jsonServer := gin.H{"online": false}
	if a.jsonFile != nil {
		if err := a.jsonFile.Ping(ctx); err != nil {
			jsonServer["error"] = err.Error()
		} else {
			jsonServer["online"] = true
		}
	}

	remoteStatus := gin.H{"configured": a.remote != nil && a.remote.Configured()}

	payload := gin.H{
		"current":    a.store.Kind(),
		"preference": preference,
		"kinds":      storage.Kinds(),
		"jsonServer": jsonServer,
		"remote":     remoteStatus,
	}
	if a.local != nil {
		if info, err := a.local.Info(ctx); err == nil {
			payload["local"] = info
		} else {
			c.Error(err)
		}
	}
	c.JSON(http.StatusOK, payload)
}

type storageRequest struct {
	Type string `json:"type" binding:"required"`
}

// UpdateStoragePreference 保存新的存储偏好，重启后生效
func (a *API) UpdateStoragePreference(c *gin.Context) {
	var req storageRequest
	if !bindJSON(c, &req, "请提供存储类型") {
		return
	}

	kind, err := storage.SetPreference(c.Request.Context(), a.kv, req.Type)
	if err != nil {
		if errors.Is(err, storage.ErrUnknownKind) {
			respondError(c, http.StatusBadRequest, "不支持的存储类型")
			return
		}
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"type":            kind,
		"restartRequired": kind != a.store.Kind(),
	})
}
