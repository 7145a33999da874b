package models

import "time"

// FilterCriteria is a view parameter owned by the order store. Status and
// Range each default to "all", which acts as a pass-through.
type FilterCriteria struct {
	Status string     `json:"status"`
	Range  string     `json:"range"`
	Date   *time.Time `json:"date,omitempty"`
}

func DefaultFilter() FilterCriteria {
	return FilterCriteria{Status: FilterStatusAll, Range: RangeAll}
}
