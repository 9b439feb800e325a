package insights

import "time"

// Snapshot aggregates recorded orders for one product, or for the whole
// shop when ProductID is empty.
type Snapshot struct {
	ProductID    string         `json:"product_id,omitempty"`
	ProductName  string         `json:"product_name,omitempty"`
	Orders       int            `json:"orders"`
	Revenue      int64          `json:"revenue"`
	AvgTicket    int64          `json:"avg_ticket"`
	MedianTicket int64          `json:"median_ticket"`
	ByChannel    map[string]int `json:"by_channel"`
	Since        *time.Time     `json:"since,omitempty"`
}

type Report struct {
	Overall  Snapshot   `json:"overall"`
	Products []Snapshot `json:"products"`
}
