package models

const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"

	ExpenseKindPurchase = "purchase"
	ExpenseKindService  = "service"
	ExpenseKindOther    = "other"

	FilterStatusAll     = "all"
	FilterStatusPending = OrderStatusPending
	FilterStatusPaid    = OrderStatusPaid

	RangeAll   = "all"
	RangeToday = "today"
	RangeWeek  = "week"
	RangeMonth = "month"
	RangeDate  = "date"
)
