package insights

import (
	"context"
	"log"
	"sort"

	"sanfeliz/internal/checkout"
)

// OrderLister is the slice of the order store the report needs.
type OrderLister interface {
	List(ctx context.Context, limit int) ([]checkout.Order, error)
}

type Service struct {
	orders OrderLister
	window int
}

// NewService reports over the latest window orders.
func NewService(orders OrderLister, window int) *Service {
	if window <= 0 {
		window = 500
	}
	return &Service{orders: orders, window: window}
}

func (s *Service) Report(ctx context.Context) (*Report, error) {
	orders, err := s.orders.List(ctx, s.window)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string][]checkout.Order)
	for _, o := range orders {
		byProduct[o.ProductID] = append(byProduct[o.ProductID], o)
	}

	report := &Report{Overall: summarize(orders)}
	for id, group := range byProduct {
		snap := summarize(group)
		snap.ProductID = id
		snap.ProductName = group[0].ProductName
		report.Products = append(report.Products, snap)
	}

	sort.Slice(report.Products, func(i, j int) bool {
		a, b := report.Products[i], report.Products[j]
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		return a.ProductID < b.ProductID
	})

	log.Printf(
		"[INSIGHTS] orders=%d products=%d revenue=%d",
		report.Overall.Orders, len(report.Products), report.Overall.Revenue,
	)

	return report, nil
}

func summarize(orders []checkout.Order) Snapshot {
	snap := Snapshot{ByChannel: make(map[string]int)}
	if len(orders) == 0 {
		return snap
	}

	totals := make([]int64, 0, len(orders))
	for _, o := range orders {
		totals = append(totals, o.Total)
		snap.Revenue += o.Total
		snap.ByChannel[string(o.Channel)]++

		if snap.Since == nil || o.CreatedAt.Before(*snap.Since) {
			t := o.CreatedAt
			snap.Since = &t
		}
	}

	sort.Slice(totals, func(i, j int) bool { return totals[i] < totals[j] })

	snap.Orders = len(orders)
	snap.AvgTicket = snap.Revenue / int64(len(orders))
	snap.MedianTicket = median(totals)
	return snap
}

// median expects sorted totals; an even count averages the middle pair.
func median(sorted []int64) int64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
