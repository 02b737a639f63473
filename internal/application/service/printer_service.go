package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/licorera-api/internal/domain/entity"
	"github.com/sangkips/licorera-api/pkg/apperror"
	"github.com/sangkips/licorera-api/pkg/printer"
	"github.com/sangkips/licorera-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// PrinterService sends receipts to the thermal printer.
type PrinterService struct {
	printer  printer.Printer
	receipts *ReceiptService
	width    int
}

// NewPrinterService creates a new printer service. width is the number of
// characters per line of the paper roll.
func NewPrinterService(p printer.Printer, receipts *ReceiptService, width int) *PrinterService {
	if width <= 0 {
		width = 32
	}
	return &PrinterService{
		printer:  p,
		receipts: receipts,
		width:    width,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printer.Kind() != printer.KindNone,
		Connected:  s.printer.Ready(ctx),
		Type:       s.printer.Kind(),
		Width:      s.width,
	}
}

// TestPrint prints a sample receipt and returns it.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	items := []entity.ReceiptItem{
		{Name: "Test Item 1", Price: decimal.NewFromInt(10), Quantity: 1},
		{Name: "Test Item 2", Price: decimal.NewFromInt(5), Quantity: 2},
	}
	receipt := &entity.Receipt{
		ID:           uuid.Nil,
		CustomerName: "PRINTER TEST",
		Date:         time.Now().In(s.receipts.loc).Format(time.DateOnly),
		Items:        items,
		Total:        decimal.NewFromInt(20),
	}

	if err := s.send(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// PrintReceipt prints a stored receipt.
func (s *PrinterService) PrintReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receipts.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.send(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *PrinterService) send(ctx context.Context, r *entity.Receipt) error {
	data := FormatReceipt(r, s.receipts.storeName, s.receipts.footer, s.width)
	if err := s.printer.Print(ctx, data); err != nil {
		s.receipts.log.Error(ctx, "print receipt", err)
		return apperror.NewAppError(http.StatusBadGateway, "Failed to print receipt")
	}
	return nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, storeName, footer string, width int) []byte {
	doc := printer.NewDocument(width)

	doc.Align(printer.AlignCenter).
		Bold(true).
		SetSize(printer.SizeDouble).
		Line(storeName).
		SetSize(printer.SizeNormal).
		Bold(false).
		Align(printer.AlignLeft).
		Rule('-')

	doc.Row("Receipt #", utils.ShortID(r.ID)).
		Row("Date", r.Date).
		Row("Customer", r.CustomerName).
		Rule('-')

	for _, item := range r.Items {
		doc.Row(fmt.Sprintf("%dx %s", item.Quantity, item.Name), item.LineTotal().StringFixed(2))
		if item.Quantity > 1 {
			doc.Line("  @ " + item.Price.StringFixed(2) + " each")
		}
	}

	doc.Rule('-').
		Bold(true).
		Row("TOTAL", "$"+r.Total.StringFixed(2)).
		Bold(false).
		Rule('-')

	doc.Align(printer.AlignCenter).
		Feed(1).
		Line(footer).
		Align(printer.AlignLeft).
		Feed(3).
		Cut()

	return doc.Bytes()
}
