// Package sales summarises receipts over a date range for the reports view.
package sales

import (
	"sort"

	"github.com/sangkips/licorera-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DefaultTopN is the number of best sellers kept in a Summary.
const DefaultTopN = 5

// CategoryTotal accumulates sales for one category.
type CategoryTotal struct {
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// ProductTotal accumulates sales for one product name.
type ProductTotal struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// Summary is the result of Aggregate.
type Summary struct {
	StartDate         string                   `json:"start_date"`
	EndDate           string                   `json:"end_date"`
	ReceiptCount      int                      `json:"receipt_count"`
	TotalSales        decimal.Decimal          `json:"total_sales"`
	TotalItems        int                      `json:"total_items"`
	CategoryBreakdown map[string]CategoryTotal `json:"category_breakdown"`
	TopProducts       []ProductTotal           `json:"top_products"`
}

// Aggregate summarises the receipts whose timestamp falls inside r.
//
// Line items are grouped by their category snapshot (blank names count as
// entity.UncategorizedLabel) and by product name, so two products sharing a
// name are merged. Best sellers are ordered by revenue, ties keeping the order
// in which the name was first sold, and cut to topN (DefaultTopN if topN < 1).
// The result does not depend on the order of receipts.
func Aggregate(receipts []entity.Receipt, r Range, topN int) Summary {
	if topN < 1 {
		topN = DefaultTopN
	}

	summary := Summary{
		StartDate:         r.StartDate(),
		EndDate:           r.EndDate(),
		TotalSales:        decimal.Zero,
		CategoryBreakdown: make(map[string]CategoryTotal),
		TopProducts:       []ProductTotal{},
	}

	var products []ProductTotal
	productIndex := make(map[string]int)

	for _, receipt := range chronological(receipts) {
		if !r.Contains(receipt.Timestamp) {
			continue
		}
		summary.ReceiptCount++
		summary.TotalSales = summary.TotalSales.Add(receipt.Total)

		for _, item := range byPosition(receipt.Items) {
			revenue := item.LineTotal()
			summary.TotalItems += item.Quantity

			key := item.CategoryLabel()
			ct, ok := summary.CategoryBreakdown[key]
			if !ok {
				ct.Revenue = decimal.Zero
			}
			ct.Quantity += item.Quantity
			ct.Revenue = ct.Revenue.Add(revenue)
			summary.CategoryBreakdown[key] = ct

			i, ok := productIndex[item.Name]
			if !ok {
				i = len(products)
				productIndex[item.Name] = i
				products = append(products, ProductTotal{Name: item.Name, Revenue: decimal.Zero})
			}
			products[i].Quantity += item.Quantity
			products[i].Revenue = products[i].Revenue.Add(revenue)
		}
	}

	sort.SliceStable(products, func(a, b int) bool {
		return products[a].Revenue.GreaterThan(products[b].Revenue)
	})
	if len(products) > topN {
		products = products[:topN]
	}
	if products != nil {
		summary.TopProducts = products
	}

	return summary
}

// chronological returns a copy of receipts ordered by timestamp, then id.
func chronological(receipts []entity.Receipt) []entity.Receipt {
	sorted := make([]entity.Receipt, len(receipts))
	copy(sorted, receipts)
	sort.SliceStable(sorted, func(a, b int) bool {
		if !sorted[a].Timestamp.Equal(sorted[b].Timestamp) {
			return sorted[a].Timestamp.Before(sorted[b].Timestamp)
		}
		return sorted[a].ID.String() < sorted[b].ID.String()
	})
	return sorted
}

func byPosition(items []entity.ReceiptItem) []entity.ReceiptItem {
	sorted := make([]entity.ReceiptItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Position < sorted[b].Position
	})
	return sorted
}
