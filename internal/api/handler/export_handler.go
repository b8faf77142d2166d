package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"dept-portal/backend/internal/service"
	"dept-portal/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportPapers 导出已通过的科研论文为 Excel（管理员）
// GET /api/v1/export/papers
func (h *ExportHandler) ExportPapers(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportApprovedPapers(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrExportNoData) {
			response.NotFound(c, 30002, "暂无已通过的论文可导出")
			return
		}
		response.InternalError(c)
		return
	}

	// 文件名含中文，按 RFC 5987 编码
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename)))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
