// Package export writes order reports to local files or cloud storage.
package export

import (
	"time"

	"lunchero/internal/models"
)

// ReportRow is one flattened, already-normalized order in a report.
type ReportRow struct {
	OrderID   string  `json:"order_id" parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Date      string  `json:"date" parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8"`
	Tower     string  `json:"tower" parquet:"name=tower, type=BYTE_ARRAY, convertedtype=UTF8"`
	Apartment int32   `json:"apartment" parquet:"name=apartment, type=INT32"`
	Customer  string  `json:"customer" parquet:"name=customer, type=BYTE_ARRAY, convertedtype=UTF8"`
	Status    string  `json:"status" parquet:"name=status, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	PayMethod string  `json:"pay_method" parquet:"name=pay_method, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	ItemCount int32   `json:"item_count" parquet:"name=item_count, type=INT32"`
	Total     float64 `json:"total" parquet:"name=total, type=DOUBLE"`
}

// Rows flattens orders into report rows, preserving their relative order.
func Rows(orders []models.Order) []ReportRow {
	rows := make([]ReportRow, 0, len(orders))
	for _, o := range orders {
		date := ""
		if o.Date != nil {
			date = o.Date.Format(time.RFC3339)
		}
		count := 0
		for _, it := range o.Items {
			count += it.Quantity
		}
		rows = append(rows, ReportRow{
			OrderID:   o.ID,
			Date:      date,
			Tower:     o.Tower,
			Apartment: int32(o.Apartment),
			Customer:  o.Customer,
			Status:    o.Status,
			PayMethod: o.PayMethod.Label,
			ItemCount: int32(count),
			Total:     o.Total,
		})
	}
	return rows
}
