package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sangkips/licorera-api/internal/domain/repository"
	"github.com/sangkips/licorera-api/internal/domain/sales"
	"github.com/sangkips/licorera-api/pkg/apperror"
	"github.com/sangkips/licorera-api/pkg/spreadsheet"
)

// defaultReportDays is the window used when no dates are given.
const defaultReportDays = 30

// ReportService builds sales summaries for the reports view.
type ReportService struct {
	receiptRepo repository.ReceiptRepository
	loc         *time.Location
	topN        int
	now         func() time.Time
}

// NewReportService creates a new report service. Day boundaries are taken
// in loc.
func NewReportService(receiptRepo repository.ReceiptRepository, loc *time.Location, topN int) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	if topN < 1 {
		topN = sales.DefaultTopN
	}
	return &ReportService{
		receiptRepo: receiptRepo,
		loc:         loc,
		topN:        topN,
		now:         time.Now,
	}
}

// SalesReportInput selects the days to report on as YYYY-MM-DD. With both
// dates empty it runs from 30 days ago through today; with one missing it
// defaults to the other.
type SalesReportInput struct {
	Start string `form:"start"`
	End   string `form:"end"`
}

// SalesSummary aggregates the receipts sold within the requested days.
func (s *ReportService) SalesSummary(ctx context.Context, input *SalesReportInput) (*sales.Summary, error) {
	r, err := s.resolveRange(input)
	if err != nil {
		return nil, err
	}

	receipts, err := s.receiptRepo.ListBetween(ctx, r.Start.UTC(), r.End.UTC())
	if err != nil {
		return nil, err
	}

	summary := sales.Aggregate(receipts, r, s.topN)
	return &summary, nil
}

// SalesExport is a report workbook ready for download.
type SalesExport struct {
	Filename string
	Content  []byte
}

// ExportSalesXLSX writes the sales summary and the underlying receipts to an
// XLSX workbook.
func (s *ReportService) ExportSalesXLSX(ctx context.Context, input *SalesReportInput) (*SalesExport, error) {
	r, err := s.resolveRange(input)
	if err != nil {
		return nil, err
	}

	receipts, err := s.receiptRepo.ListBetween(ctx, r.Start.UTC(), r.End.UTC())
	if err != nil {
		return nil, err
	}
	summary := sales.Aggregate(receipts, r, s.topN)

	categories := make([]string, 0, len(summary.CategoryBreakdown))
	for name := range summary.CategoryBreakdown {
		categories = append(categories, name)
	}
	sort.Strings(categories)
	categoryRows := make([][]any, 0, len(categories))
	for _, name := range categories {
		c := summary.CategoryBreakdown[name]
		categoryRows = append(categoryRows, []any{name, c.Quantity, c.Revenue.InexactFloat64()})
	}

	productRows := make([][]any, 0, len(summary.TopProducts))
	for i, p := range summary.TopProducts {
		productRows = append(productRows, []any{i + 1, p.Name, p.Quantity, p.Revenue.InexactFloat64()})
	}

	receiptRows := make([][]any, 0, len(receipts))
	for _, rc := range receipts {
		if !r.Contains(rc.Timestamp) {
			continue
		}
		receiptRows = append(receiptRows, []any{
			rc.ID.String(),
			rc.Date,
			rc.Timestamp.In(s.loc).Format(time.DateTime),
			rc.CustomerName,
			rc.ItemCount(),
			rc.Total.InexactFloat64(),
		})
	}

	content, err := spreadsheet.Build([]spreadsheet.Sheet{
		{
			Name:   "Summary",
			Header: []string{"Metric", "Value"},
			Rows: [][]any{
				{"Start date", summary.StartDate},
				{"End date", summary.EndDate},
				{"Receipts", summary.ReceiptCount},
				{"Total sales", summary.TotalSales.InexactFloat64()},
				{"Items sold", summary.TotalItems},
			},
			Widths: []float64{18, 18},
		},
		{
			Name:   "Categories",
			Header: []string{"Category", "Quantity", "Revenue"},
			Rows:   categoryRows,
			Widths: []float64{24, 12, 14},
		},
		{
			Name:   "Top Products",
			Header: []string{"Rank", "Product", "Quantity", "Revenue"},
			Rows:   productRows,
			Widths: []float64{8, 32, 12, 14},
		},
		{
			Name:   "Receipts",
			Header: []string{"Receipt", "Date", "Sold at", "Customer", "Items", "Total"},
			Rows:   receiptRows,
			Widths: []float64{38, 12, 20, 28, 8, 12},
		},
	})
	if err != nil {
		return nil, err
	}

	return &SalesExport{
		Filename: fmt.Sprintf("sales-%s-to-%s.xlsx", summary.StartDate, summary.EndDate),
		Content:  content,
	}, nil
}

func (s *ReportService) resolveRange(input *SalesReportInput) (sales.Range, error) {
	start, end := input.Start, input.End
	if start == "" && end == "" {
		return sales.LastDays(s.now().In(s.loc), defaultReportDays), nil
	}
	if start == "" {
		start = end
	}
	if end == "" {
		end = start
	}

	r, err := sales.ParseRange(start, end, s.loc)
	if err != nil {
		if errors.Is(err, sales.ErrInvalidRange) {
			return sales.Range{}, apperror.NewFieldError("end", "must not be before start")
		}
		return sales.Range{}, apperror.NewBadRequestError("Dates must be formatted as YYYY-MM-DD")
	}
	return r, nil
}
