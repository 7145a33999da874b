package models

import "time"

type PayMethod struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Image string `json:"image"`
}

// PayMethods is the fixed set of accepted payment methods. They are
// reference data embedded by value into orders, never persisted on their own.
var PayMethods = []PayMethod{
	{ID: "cash", Label: "Cash", Image: "cash.svg"},
	{ID: "transfer", Label: "Transfer", Image: "transfer.svg"},
}

// LineItem is a snapshot of a catalog item at the moment it was added to an
// order. Later edits to the catalog do not change existing orders.
type LineItem struct {
	LunchItem
	Quantity int `json:"quantity"`
}

type Order struct {
	ID        string     `json:"id,omitempty"`
	Tower     string     `json:"tower"`
	Apartment int        `json:"apartment"`
	Customer  string     `json:"customer,omitempty"`
	Phone     int64      `json:"phone"`
	PayMethod PayMethod  `json:"pay_method"`
	Items     []LineItem `json:"items"`
	Notes     string     `json:"notes,omitempty"`
	Time      string     `json:"time,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	Status    string     `json:"status"`
	Total     float64    `json:"total"`
}

func (o Order) Clone() Order {
	out := o
	out.Items = make([]LineItem, len(o.Items))
	for i, it := range o.Items {
		it.LunchItem = it.LunchItem.Clone()
		out.Items[i] = it
	}
	if o.Date != nil {
		d := *o.Date
		out.Date = &d
	}
	return out
}
