package jsonserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// maxBodyBytes 单次写入允许的请求体大小，图片以 data URL 保存时可能较大
const maxBodyBytes = 32 << 20

// Handler 提供 JSON 文件的 HTTP 读写接口
type Handler struct {
	doc *Document
}

// NewHandler 创建处理器
func NewHandler(doc *Document) *Handler {
	return &Handler{doc: doc}
}

// Register 注册路由
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.GET("/data", h.GetData)
	api.HEAD("/data", h.HeadData)
	api.POST("/data", h.ReplaceData)
	api.GET("/:section", h.GetSection)
	api.PUT("/:section", h.PutSection)
}

// NewEngine 创建只包含 JSON 文件接口的 gin 引擎
func NewEngine(doc *Document) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	NewHandler(doc).Register(r)
	return r
}

// GetData 返回整个文档
func (h *Handler) GetData(c *gin.Context) {
	doc, err := h.doc.Read()
	if err != nil {
		log.Printf("[jsonserver] read failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read data file"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// HeadData 供存储面板探测服务是否在线
func (h *Handler) HeadData(c *gin.Context) {
	if _, err := h.doc.Read(); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

// GetSection 返回一个分区的原始值
func (h *Handler) GetSection(c *gin.Context) {
	section := c.Param("section")
	value, ok, err := h.doc.Section(section)
	if err != nil {
		log.Printf("[jsonserver] read failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read data file"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Section '%s' not found", section)})
		return
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read data file"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", compact.Bytes())
}

// PutSection 替换一个分区
func (h *Handler) PutSection(c *gin.Context) {
	section := c.Param("section")
	body, ok := readJSONBody(c)
	if !ok {
		return
	}

	if err := h.doc.PutSection(section, body); err != nil {
		log.Printf("[jsonserver] update %s failed: %v", section, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write data file"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Section '%s' updated successfully", section),
	})
}

// ReplaceData 整体替换文档
func (h *Handler) ReplaceData(c *gin.Context) {
	body, ok := readJSONBody(c)
	if !ok {
		return
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data must be a JSON object"})
		return
	}
	if err := h.doc.Replace(doc); err != nil {
		log.Printf("[jsonserver] replace failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write data file"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Data file updated successfully"})
}

func readJSONBody(c *gin.Context) (json.RawMessage, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return nil, false
	}
	if !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return nil, false
	}
	return json.RawMessage(body), true
}
