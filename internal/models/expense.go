package models

import "time"

type Expense struct {
	ID          string     `json:"id,omitempty"`
	Kind        string     `json:"kind"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Amount      float64    `json:"amount"`
	Time        string     `json:"time,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

func (e Expense) Clone() Expense {
	out := e
	if e.Date != nil {
		d := *e.Date
		out.Date = &d
	}
	return out
}
