// Package store is the persistence collaborator: it owns the canonical
// collections in the local sqlite database and hands read-only snapshots to
// the reporting core. The core never writes here itself — it returns derived
// values for this layer to persist.
package store

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/booklyhq/bookly/internal/models"
	"github.com/booklyhq/bookly/internal/report"
)

type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{DB: db} }

// Load reads the full persisted state. Collections come back in stable
// display order (orders/expenses newest first, products by name).
func (s *Store) Load() (models.Snapshot, error) {
	var snap models.Snapshot
	profile, err := s.Profile()
	if err != nil {
		return snap, err
	}
	snap.Profile = profile
	if err := s.DB.Preload("Items").Order("date desc, id desc").Find(&snap.Orders).Error; err != nil {
		return snap, err
	}
	if err := s.DB.Order("name asc").Find(&snap.Products).Error; err != nil {
		return snap, err
	}
	if err := s.DB.Order("total_spent desc, name asc").Find(&snap.Customers).Error; err != nil {
		return snap, err
	}
	if err := s.DB.Order("date desc, id desc").Find(&snap.Expenses).Error; err != nil {
		return snap, err
	}
	return snap, nil
}

// Profile returns the single settings row, creating defaults on first use so
// state saved by older versions with missing fields still loads.
func (s *Store) Profile() (models.BusinessProfile, error) {
	var p models.BusinessProfile
	err := s.DB.First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = models.DefaultProfile()
		if err := s.DB.Create(&p).Error; err != nil {
			return p, err
		}
		return p, nil
	}
	if err != nil {
		return p, err
	}
	if p.VIPThreshold < 1 {
		p.VIPThreshold = 1
	}
	if p.Currency == "" {
		p.Currency = "NGN"
	}
	return p, nil
}

// SaveProfile replaces the settings row.
func (s *Store) SaveProfile(p models.BusinessProfile) (models.BusinessProfile, error) {
	current, err := s.Profile()
	if err != nil {
		return p, err
	}
	p.ID = current.ID
	if p.VIPThreshold < 1 {
		p.VIPThreshold = 1
	}
	if err := s.DB.Save(&p).Error; err != nil {
		return p, err
	}
	return p, nil
}

func (s *Store) CreateOrder(o *models.Order) error {
	return s.DB.Create(o).Error
}

func (s *Store) GetOrder(id string) (models.Order, error) {
	var o models.Order
	err := s.DB.Preload("Items").First(&o, "id = ?", id).Error
	return o, err
}

func (s *Store) CreateExpense(e *models.Expense) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	return s.DB.Create(e).Error
}

func (s *Store) SaveProduct(p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return s.DB.Save(p).Error
}

func (s *Store) DeleteProduct(id string) error {
	return s.DB.Delete(&models.Product{}, "id = ?", id).Error
}

// AddStock bumps a product's stock level by qty (restock flow).
func (s *Store) AddStock(id string, qty int) (models.Product, error) {
	var p models.Product
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&p).Update("stock", gorm.Expr("stock + ?", qty)).Error; err != nil {
			return err
		}
		return tx.First(&p, "id = ?", id).Error
	})
	return p, err
}

// SyncCustomers replaces the cached customer projection with freshly derived
// stats. Contact fields from existing rows survive the rebuild; everything
// derived (tier, totals, counts, last order) is overwritten.
func (s *Store) SyncCustomers(ranked []report.CustomerStats) ([]models.Customer, error) {
	var existing []models.Customer
	if err := s.DB.Find(&existing).Error; err != nil {
		return nil, err
	}
	prior := make(map[string]models.Customer, len(existing))
	for _, c := range existing {
		prior[c.Name] = c
	}

	rows := make([]models.Customer, 0, len(ranked))
	for _, st := range ranked {
		row := models.Customer{
			ID:         uuid.NewString(),
			Name:       st.Name,
			Tier:       st.Tier,
			TotalSpent: st.TotalSpent,
			OrderCount: st.OrderCount,
		}
		if !st.LastOrderDate.IsZero() {
			d := st.LastOrderDate
			row.LastOrderDate = &d
		}
		if old, ok := prior[st.Name]; ok {
			row.ID = old.ID
			row.Phone = old.Phone
			row.Email = old.Email
		}
		rows = append(rows, row)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Customer{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
