package models

import "time"

const (
	EntityLunches  = "lunches"
	EntityOrders   = "orders"
	EntityExpenses = "expenses"

	ActionCreated       = "created"
	ActionUpdated       = "updated"
	ActionDeleted       = "deleted"
	ActionStatusChanged = "status_changed"
	ActionRefreshed     = "refreshed"
)

// ChangeEvent describes a successful state transition in a store. Subscribers
// receive it after the in-memory state has already been updated.
type ChangeEvent struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     string    `json:"id,omitempty"`
	At     time.Time `json:"at"`
}
