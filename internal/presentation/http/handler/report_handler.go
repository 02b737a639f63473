package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/licorera-api/internal/application/service"
	"github.com/sangkips/licorera-api/internal/presentation/http/dto/request"
	"github.com/sangkips/licorera-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the sales reports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func bindReportQuery(c *gin.Context) (*service.SalesReportInput, bool) {
	var q request.SalesReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return nil, false
	}
	return &service.SalesReportInput{Start: q.Start, End: q.End}, true
}

// Sales returns the sales summary for ?start=&end= (30 days ago through today by default)
func (h *ReportHandler) Sales(c *gin.Context) {
	input, ok := bindReportQuery(c)
	if !ok {
		return
	}

	summary, err := h.reportService.SalesSummary(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales report generated", summary)
}

// ExportSales downloads the sales report as an XLSX workbook
func (h *ReportHandler) ExportSales(c *gin.Context) {
	input, ok := bindReportQuery(c)
	if !ok {
		return
	}

	export, err := h.reportService.ExportSalesXLSX(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, xlsxContentType, export.Filename, export.Content)
}
