package report

import (
	"sort"
	"time"

	"github.com/booklyhq/bookly/internal/models"
)

// CustomerStats is the aggregate derived for one customer name.
type CustomerStats struct {
	Name          string      `json:"name"`
	TotalSpent    float64     `json:"total_spent"`
	OrderCount    int         `json:"order_count"`
	LastOrderDate time.Time   `json:"last_order_date"`
	Tier          models.Tier `json:"tier"`
}

// DeriveCustomerStats groups the order history by customer name and computes
// total spent, order count, most recent order date and tier for each.
//
// Grouping is a case-sensitive exact match on the display name — there is no
// id reconciliation and no fuzzy matching, so "Ada" and "ada" are two
// customers. Known limitation, kept deliberately.
//
// A threshold below 1 is treated as 1 so a single-order customer can never
// land in VIP through a misconfigured profile. The whole result is recomputed
// on every call; with hundreds of orders that is cheap and avoids any
// incremental state.
func DeriveCustomerStats(orders []models.Order, vipThreshold int) map[string]CustomerStats {
	if vipThreshold < 1 {
		vipThreshold = 1
	}
	stats := make(map[string]CustomerStats)
	for _, o := range orders {
		s := stats[o.CustomerName]
		s.Name = o.CustomerName
		s.TotalSpent += o.Total
		s.OrderCount++
		if o.Date.After(s.LastOrderDate) {
			s.LastOrderDate = o.Date
		}
		stats[o.CustomerName] = s
	}
	for name, s := range stats {
		s.Tier = tierFor(s.OrderCount, vipThreshold)
		stats[name] = s
	}
	return stats
}

func tierFor(orderCount, vipThreshold int) models.Tier {
	switch {
	case orderCount >= vipThreshold:
		return models.TierVIP
	case orderCount >= 2:
		return models.TierReturning
	default:
		return models.TierNew
	}
}

// RankCustomers flattens derived stats into a deterministic order for display
// and export: total spent descending, name ascending on ties.
func RankCustomers(stats map[string]CustomerStats) []CustomerStats {
	out := make([]CustomerStats, 0, len(stats))
	for _, s := range stats {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSpent != out[j].TotalSpent {
			return out[i].TotalSpent > out[j].TotalSpent
		}
		return out[i].Name < out[j].Name
	})
	return out
}
