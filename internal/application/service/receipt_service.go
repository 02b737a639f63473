package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sangkips/licorera-api/internal/config"
	"github.com/sangkips/licorera-api/internal/domain/cart"
	"github.com/sangkips/licorera-api/internal/domain/entity"
	"github.com/sangkips/licorera-api/internal/domain/repository"
	"github.com/sangkips/licorera-api/pkg/apperror"
	"github.com/sangkips/licorera-api/pkg/logger"
	"github.com/sangkips/licorera-api/pkg/metrics"
	"github.com/sangkips/licorera-api/pkg/pagination"
	"github.com/sangkips/licorera-api/pkg/pdfdoc"
	"github.com/sangkips/licorera-api/pkg/validation"
)

const (
	defaultStoreName = "Liquor Store Receipt"
	defaultFooter    = "Thank you for your purchase!"
)

// ReceiptService turns carts into stored receipts and renders them.
type ReceiptService struct {
	receiptRepo repository.ReceiptRepository
	productRepo repository.ProductRepository
	sales       *metrics.SalesMetrics
	log         *logger.Logger
	loc         *time.Location
	storeName   string
	footer      string
	now         func() time.Time
}

// NewReceiptService creates a new receipt service. Receipt dates are taken in
// loc.
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	productRepo repository.ProductRepository,
	sales *metrics.SalesMetrics,
	log *logger.Logger,
	cfg config.ReceiptConfig,
	loc *time.Location,
) *ReceiptService {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	storeName := cfg.StoreName
	if storeName == "" {
		storeName = defaultStoreName
	}
	footer := cfg.Footer
	if footer == "" {
		footer = defaultFooter
	}
	return &ReceiptService{
		receiptRepo: receiptRepo,
		productRepo: productRepo,
		sales:       sales,
		log:         log,
		loc:         loc,
		storeName:   storeName,
		footer:      footer,
		now:         time.Now,
	}
}

// Generate validates c and stores it as a receipt made by cashierID. The
// receipt and its items are written together. The cart is not modified.
func (s *ReceiptService) Generate(ctx context.Context, cashierID uuid.UUID, c *cart.Cart) (*entity.Receipt, error) {
	receipt, err := c.Finalize(s.now().In(s.loc))
	if err != nil {
		s.sales.IncFailure("validation")
		return nil, cartValidationError(err)
	}
	receipt.Timestamp = receipt.Timestamp.UTC()
	receipt.CashierID = cashierID

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		s.sales.IncFailure("store")
		return nil, err
	}

	s.sales.ObserveReceipt(receipt.Total, receipt.ItemCount())
	s.log.Event(ctx, zerolog.InfoLevel).
		Str("receipt_id", receipt.ID.String()).
		Str("total", receipt.Total.StringFixed(2)).
		Int("items", receipt.ItemCount()).
		Msg("receipt generated")
	return receipt, nil
}

// ReceiptItemInput is one line of a stateless receipt request.
type ReceiptItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gte=0"`
}

// CreateReceiptInput builds a receipt in one call without a stored cart.
type CreateReceiptInput struct {
	CashierID    uuid.UUID          `json:"-"`
	CustomerName string             `json:"customer_name"`
	Items        []ReceiptItemInput `json:"items" validate:"dive"`
}

// CreateReceipt assembles a cart from the current product records and
// generates its receipt. Repeated product ids are merged and a line whose
// quantity ends below one is dropped.
func (s *ReceiptService) CreateReceipt(ctx context.Context, input *CreateReceiptInput) (*entity.Receipt, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	c := cart.New()
	c.SetCustomer(input.CustomerName)
	for i, item := range input.Items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewFieldError(fmt.Sprintf("items[%d].product_id", i), "does not exist")
		}

		before := 0
		if line, ok := c.Line(product.ID); ok {
			before = line.Quantity
		}
		c.Add(product)
		if err := c.SetQuantity(product.ID, before+item.Quantity); err != nil {
			return nil, err
		}
	}

	return s.Generate(ctx, input.CashierID, c)
}

// GetReceipt retrieves a receipt with its items.
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// ListReceipts returns receipts newest first.
func (s *ReceiptService) ListReceipts(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Receipt], error) {
	params.Validate()
	receipts, total, err := s.receiptRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(receipts, pag), nil
}

// NextReceiptNumber is the number shown on the receipt being built. It is
// only a display hint; two open sessions see the same number.
func (s *ReceiptService) NextReceiptNumber(ctx context.Context) (int64, error) {
	count, err := s.receiptRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	return count + 1, nil
}

// ReceiptPDF is a rendered receipt document.
type ReceiptPDF struct {
	Filename string
	Content  []byte
}

// RenderReceiptPDF renders a stored receipt as a PDF.
func (s *ReceiptService) RenderReceiptPDF(ctx context.Context, id uuid.UUID) (*ReceiptPDF, error) {
	receipt, err := s.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}

	doc := pdfdoc.New(s.storeName)
	doc.Title(s.storeName)
	doc.Field("Receipt #", receipt.ID.String())
	doc.Field("Date", receipt.Date)
	doc.Field("Customer", receipt.CustomerName)

	rows := make([][]string, 0, len(receipt.Items))
	for _, item := range receipt.Items {
		rows = append(rows, []string{
			item.Name,
			fmt.Sprint(item.Quantity),
			"$" + item.Price.StringFixed(2),
			"$" + item.LineTotal().StringFixed(2),
		})
	}
	doc.Table([]pdfdoc.Column{
		{Header: "Item", Width: 80, Align: "L"},
		{Header: "Qty", Width: 20, Align: "C"},
		{Header: "Price", Width: 35, Align: "R"},
		{Header: "Total", Width: 35, Align: "R"},
	}, rows)
	doc.Total("Total", "$"+receipt.Total.StringFixed(2))
	doc.Footer(s.footer)

	content, err := doc.Bytes()
	if err != nil {
		return nil, err
	}
	return &ReceiptPDF{
		Filename: fmt.Sprintf("receipt-%s.pdf", receipt.ID),
		Content:  content,
	}, nil
}

func cartValidationError(err error) error {
	var fields []apperror.FieldError
	if errors.Is(err, cart.ErrMissingCustomer) {
		fields = append(fields, apperror.FieldError{Field: "customer_name", Message: "is required"})
	}
	if errors.Is(err, cart.ErrEmpty) {
		fields = append(fields, apperror.FieldError{Field: "items", Message: "must contain at least one product"})
	}
	if len(fields) == 0 {
		return err
	}
	return apperror.NewValidationError(fields)
}
