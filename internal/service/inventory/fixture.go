package inventory

import (
	model "github.com/centralaluminiosdelvalle/backend/internal/model/inventory"
)

// fixtureItems is the static dataset served whenever live retrieval is
// unavailable or fails. It mirrors a representative slice of the real
// sheet and carries no relationship to previously fetched data.
func fixtureItems() []model.Item {
	return []model.Item{
		{Name: "CABEZAL 5020 NAT", Quantity: 36, Row: 4},
		{Name: "CABEZAL 5020 BP", Quantity: 107, Row: 5},
		{Name: "CABEZAL 5020 NEG", Quantity: 87, Row: 6},
		{Name: "SILLAR 5020 NAT", Quantity: 3, Row: 7},
		{Name: "SILLAR 5020 BP", Quantity: 65, Row: 8},
		{Name: "SILLAR 5020 NEG", Quantity: 113, Row: 9},
		{Name: "JAMBA 5020 NAT", Quantity: 15, Row: 10},
	}
}
