package inventory

import "time"

// Item is one product row from the inventory sheet.
type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Row      int    `json:"row"`
}

// Snapshot is a fully materialized copy of the inventory, rebuilt on
// every fetch. Items keep the sheet's row order.
type Snapshot struct {
	Items       []Item    `json:"items"`
	LastUpdated time.Time `json:"lastUpdated"`
}
