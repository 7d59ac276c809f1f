package handlers

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/booklyhq/bookly/internal/models"
	"github.com/booklyhq/bookly/internal/services"
	"github.com/booklyhq/bookly/internal/store"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.BusinessProfile{}, &models.Product{}, &models.Order{}, &models.OrderItem{}, &models.Expense{}, &models.Customer{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.New(db)
}

func testOrderService() *services.OrderService {
	return services.NewOrderService(models.SourceWalkIn, models.PayCash)
}

func seedOrder(t *testing.T, st *store.Store, customer string, total float64, source models.SalesSource, daysAgo int) models.Order {
	t.Helper()
	order, err := testOrderService().BuildOrder(services.DraftInput{
		CustomerName: customer,
		FlatAmount:   total,
		Source:       string(source),
	})
	if err != nil {
		t.Fatalf("build order: %v", err)
	}
	order.Date = time.Now().AddDate(0, 0, -daysAgo)
	if err := st.CreateOrder(&order); err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}
