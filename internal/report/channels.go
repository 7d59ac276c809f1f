package report

import (
	"math"
	"sort"

	"github.com/booklyhq/bookly/internal/models"
)

// ChannelCount is one row of the order-count distribution.
type ChannelCount struct {
	Channel    models.SalesSource `json:"channel"`
	Count      int                `json:"count"`
	Percentage int                `json:"percentage"`
}

// ChannelDistribution buckets orders by source and computes each channel's
// share of the order count, rounded to the nearest whole percent. Channels
// with no orders are omitted. Zero orders yields an empty result — never a
// division by zero. Rows sort by count descending, channel name ascending on
// ties, so repeated calls render identically.
func ChannelDistribution(orders []models.Order) []ChannelCount {
	if len(orders) == 0 {
		return nil
	}
	counts := make(map[models.SalesSource]int)
	for _, o := range orders {
		counts[o.Source]++
	}
	total := float64(len(orders))
	out := make([]ChannelCount, 0, len(counts))
	for src, n := range counts {
		out = append(out, ChannelCount{
			Channel:    src,
			Count:      n,
			Percentage: int(math.Round(float64(n) / total * 100)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Channel < out[j].Channel
	})
	return out
}

// ChannelRevenue is one row of the revenue breakdown.
type ChannelRevenue struct {
	Channel models.SalesSource `json:"channel"`
	Count   int                `json:"count"`
	Revenue float64            `json:"revenue"`
}

// RevenueBySource totals revenue and order count per channel. Unlike the
// count distribution, every enumerated channel gets a row even at zero, so
// the breakdown view always shows the full channel set. Orders carrying a
// source outside the known set still get their own row rather than being
// dropped. Sorted by revenue descending, channel name ascending on ties.
func RevenueBySource(orders []models.Order) []ChannelRevenue {
	idx := make(map[models.SalesSource]int)
	out := make([]ChannelRevenue, 0, 8)
	for _, src := range models.AllSources() {
		idx[src] = len(out)
		out = append(out, ChannelRevenue{Channel: src})
	}
	for _, o := range orders {
		i, ok := idx[o.Source]
		if !ok {
			i = len(out)
			idx[o.Source] = i
			out = append(out, ChannelRevenue{Channel: o.Source})
		}
		out[i].Count++
		out[i].Revenue += o.Total
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Channel < out[j].Channel
	})
	return out
}
