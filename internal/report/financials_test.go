package report

import (
	"testing"
	"time"

	"github.com/booklyhq/bookly/internal/models"
)

func order(total float64, items ...models.OrderItem) models.Order {
	return models.Order{ID: "o", CustomerName: "Guest", Total: total, Items: items, Date: time.Now(), Status: models.StatusPaid, Source: models.SourceWalkIn, PaymentMethod: models.PayCash}
}

func TestComputeFinancialsEmpty(t *testing.T) {
	f := ComputeFinancials(nil, nil, nil, Options{})
	if f.Revenue != 0 || f.Expenses != 0 || f.COGS != 0 || f.Profit != 0 {
		t.Fatalf("expected all-zero financials, got %+v", f)
	}
}

func TestComputeFinancialsRevenueIsOrderSum(t *testing.T) {
	orders := []models.Order{order(35000), order(1250.5), order(0)}
	f := ComputeFinancials(orders, nil, nil, Options{})
	if f.Revenue != 36250.5 {
		t.Fatalf("revenue = %v, want 36250.5", f.Revenue)
	}
	if f.Profit != 36250.5 {
		t.Fatalf("profit = %v, want 36250.5", f.Profit)
	}
}

func TestComputeFinancialsCOGSLookup(t *testing.T) {
	products := []models.Product{
		{ID: "p1", Name: "Agbada Classic Blue", CostPrice: 15000, SellingPrice: 35000},
		{ID: "p2", Name: "Native Cap", CostPrice: 2500, SellingPrice: 6500},
	}
	tests := []struct {
		name string
		item models.OrderItem
		cogs float64
	}{
		{"match by product id", models.OrderItem{ProductID: "p1", Name: "renamed since sale", Quantity: 2, Price: 35000}, 30000},
		{"fallback to exact name", models.OrderItem{Name: "Native Cap", Quantity: 3, Price: 6500}, 7500},
		{"case sensitive name miss", models.OrderItem{Name: "native cap", Quantity: 3, Price: 6500}, 0},
		{"unknown product contributes zero", models.OrderItem{ProductID: "deleted", Name: "Old Stock", Quantity: 5, Price: 100}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ComputeFinancials([]models.Order{order(0, tt.item)}, products, nil, Options{})
			if f.COGS != tt.cogs {
				t.Fatalf("cogs = %v, want %v", f.COGS, tt.cogs)
			}
		})
	}
}

func TestComputeFinancialsQuickSaleHasNoCost(t *testing.T) {
	products := []models.Product{{ID: "p1", Name: "Item", CostPrice: 100}}
	f := ComputeFinancials([]models.Order{order(5000)}, products, nil, Options{})
	if f.COGS != 0 {
		t.Fatalf("quick sale cogs = %v, want 0", f.COGS)
	}
	if f.Revenue != 5000 {
		t.Fatalf("revenue = %v, want 5000", f.Revenue)
	}
}

func TestComputeFinancialsProfitMayBeNegative(t *testing.T) {
	expenses := []models.Expense{{ID: "e1", Category: "Rent", Amount: 90000}}
	f := ComputeFinancials([]models.Order{order(10000)}, nil, expenses, Options{})
	if f.Profit != -80000 {
		t.Fatalf("profit = %v, want -80000", f.Profit)
	}
}

func TestComputeFinancialsPaidOnlyOption(t *testing.T) {
	pending := order(7000)
	pending.Status = models.StatusPending
	orders := []models.Order{order(3000), pending}

	all := ComputeFinancials(orders, nil, nil, Options{})
	if all.Revenue != 10000 {
		t.Fatalf("default revenue = %v, want 10000 (pending included)", all.Revenue)
	}
	paid := ComputeFinancials(orders, nil, nil, Options{PaidOnly: true})
	if paid.Revenue != 3000 {
		t.Fatalf("paid-only revenue = %v, want 3000", paid.Revenue)
	}
}

func TestComputeFinancialsDoesNotMutateInputs(t *testing.T) {
	orders := []models.Order{order(100, models.OrderItem{ProductID: "p1", Name: "X", Quantity: 1, Price: 100})}
	products := []models.Product{{ID: "p1", Name: "X", CostPrice: 40}}
	before := orders[0]

	first := ComputeFinancials(orders, products, nil, Options{})
	second := ComputeFinancials(orders, products, nil, Options{})
	if first != second {
		t.Fatalf("repeated runs differ: %+v vs %+v", first, second)
	}
	if orders[0].Total != before.Total || len(orders[0].Items) != 1 {
		t.Fatalf("input order mutated: %+v", orders[0])
	}
}

func TestInventoryValuation(t *testing.T) {
	products := []models.Product{
		{ID: "p1", CostPrice: 15000, SellingPrice: 35000, Stock: 2},
		{ID: "p2", CostPrice: 2500, SellingPrice: 6500, Stock: 4},
		{ID: "p3", CostPrice: 1000, SellingPrice: 2000, Stock: -3}, // corrupt stock must not subtract
	}
	cost, retail := InventoryValuation(products)
	if cost != 40000 {
		t.Fatalf("cost = %v, want 40000", cost)
	}
	if retail != 96000 {
		t.Fatalf("retail = %v, want 96000", retail)
	}
}
