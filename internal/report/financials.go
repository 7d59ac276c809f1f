// Package report computes derived read-models from a snapshot of orders,
// products and expenses: profit figures, channel distribution and customer
// tiers. Every function here is pure: inputs are never mutated, there is no
// I/O, and identical snapshots always produce identical results, so calls are
// safe to repeat or run concurrently without coordination.
package report

import "github.com/booklyhq/bookly/internal/models"

// Financials is the profit summary shown on the dashboard.
type Financials struct {
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	COGS     float64 `json:"cogs"`
	Profit   float64 `json:"profit"`
}

// Options tunes the aggregation. The zero value keeps the historical
// behavior: revenue counts every order regardless of payment status.
type Options struct {
	// PaidOnly excludes Pending orders from revenue and cost of goods.
	PaidOnly bool
}

// ComputeFinancials aggregates revenue, expenses, cost of goods sold and net
// profit. Cost lookup per item: product id first, then case-sensitive exact
// name. An item matching no product contributes zero cost — quick sales and
// lines referencing deleted products are expected, not errors. Profit may be
// negative; no clamping.
func ComputeFinancials(orders []models.Order, products []models.Product, expenses []models.Expense, opts Options) Financials {
	byID := make(map[string]models.Product, len(products))
	byName := make(map[string]models.Product, len(products))
	for _, p := range products {
		if _, ok := byID[p.ID]; !ok {
			byID[p.ID] = p
		}
		if _, ok := byName[p.Name]; !ok {
			byName[p.Name] = p
		}
	}

	var f Financials
	for _, o := range orders {
		if opts.PaidOnly && o.Status != models.StatusPaid {
			continue
		}
		f.Revenue += o.Total
		for _, it := range o.Items {
			p, ok := byID[it.ProductID]
			if !ok {
				p, ok = byName[it.Name]
			}
			if !ok {
				continue
			}
			f.COGS += p.CostPrice * float64(it.Quantity)
		}
	}
	for _, e := range expenses {
		f.Expenses += e.Amount
	}
	f.Profit = f.Revenue - f.Expenses - f.COGS
	return f
}

// InventoryValuation returns total stock valued at cost price and at selling
// price. Negative stock counts as zero rather than subtracting value.
func InventoryValuation(products []models.Product) (cost, retail float64) {
	for _, p := range products {
		stock := p.Stock
		if stock < 0 {
			stock = 0
		}
		cost += p.CostPrice * float64(stock)
		retail += p.SellingPrice * float64(stock)
	}
	return cost, retail
}
