package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/licorera-api/internal/application/service"
	"github.com/sangkips/licorera-api/internal/presentation/http/dto/request"
	"github.com/sangkips/licorera-api/internal/presentation/http/dto/response"
	"github.com/sangkips/licorera-api/pkg/pagination"
)

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// List returns receipts newest first, paginated by ?page=&per_page=
func (h *ReceiptHandler) List(c *gin.Context) {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.receiptService.ListReceipts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipts retrieved successfully", result)
}

// Create builds and stores a receipt from an explicit item list
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req request.CreateReceiptRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]service.ReceiptItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.ReceiptItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), &service.CreateReceiptInput{
		CashierID:    GetUserID(c),
		CustomerName: req.CustomerName,
		Items:        items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt generated successfully", receipt)
}

// NextNumber returns the number to show on the receipt being built
func (h *ReceiptHandler) NextNumber(c *gin.Context) {
	n, err := h.receiptService.NextReceiptNumber(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Next receipt number", gin.H{"next_number": n})
}

// Get returns one receipt with its items
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt retrieved successfully", receipt)
}

// PDF downloads the receipt document
func (h *ReceiptHandler) PDF(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	doc, err := h.receiptService.RenderReceiptPDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, "application/pdf", doc.Filename, doc.Content)
}
