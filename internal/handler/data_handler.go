package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wems/internal/storage/indexed"
)

const maxImportBytes = 32 << 20

// ExportData 下载本地索引库的完整备份
func (a *API) ExportData(c *gin.Context) {
	data, err := a.local.Export(c.Request.Context())
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "导出失败")
		return
	}

	filename := indexed.BackupFilename(a.now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// ImportData 从备份文件恢复数据，支持 multipart 的 file 字段或直接提交 JSON
func (a *API) ImportData(c *gin.Context) {
	data, err := readImportPayload(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "未找到备份文件")
		return
	}

	report, err := a.local.Import(c.Request.Context(), data)
	if err != nil {
		respondError(c, http.StatusBadRequest, "备份文件格式错误")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": len(report.Failed) == 0, "report": report})
}

// ClearData 清空本地索引库
func (a *API) ClearData(c *gin.Context) {
	if err := a.local.ClearAll(c.Request.Context()); err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "清空失败")
		return
	}
	respondSuccess(c, "数据已清空")
}

func readImportPayload(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("file"); err == nil {
		src, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer src.Close()
		return io.ReadAll(io.LimitReader(src, maxImportBytes))
	}

	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	return data, nil
}
