// Package normalize converts loosely-typed records coming back from a
// persistence collaborator into the canonical entity shapes. The collaborator
// is the source of truth and may evolve independently of this client, so the
// layer is permissive: garbage input yields a safe default, never an error.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"lunchero/internal/models"
)

// rawOrder keeps every ambiguous field as interface{} so that a record with
// string-typed numerics or a missing column still decodes without error.
type rawOrder struct {
	ID        any            `mapstructure:"id"`
	Tower     any            `mapstructure:"tower"`
	Apartment any            `mapstructure:"apartment"`
	Customer  any            `mapstructure:"customer"`
	Phone     any            `mapstructure:"phone"`
	PayMethod map[string]any `mapstructure:"pay_method"`
	Items     []rawLineItem  `mapstructure:"items"`
	Notes     any            `mapstructure:"notes"`
	Time      any            `mapstructure:"time"`
	Date      any            `mapstructure:"date"`
	Status    any            `mapstructure:"status"`
	Total     any            `mapstructure:"total"`
}

type rawLineItem struct {
	ID       any   `mapstructure:"id"`
	Title    any   `mapstructure:"title"`
	Image    any   `mapstructure:"image"`
	Price    any   `mapstructure:"price"`
	Tags     []any `mapstructure:"tags"`
	Quantity any   `mapstructure:"quantity"`
}

type rawLunch struct {
	ID    any   `mapstructure:"id"`
	Title any   `mapstructure:"title"`
	Image any   `mapstructure:"image"`
	Price any   `mapstructure:"price"`
	Tags  []any `mapstructure:"tags"`
}

type rawExpense struct {
	ID          any `mapstructure:"id"`
	Kind        any `mapstructure:"kind"`
	Title       any `mapstructure:"title"`
	Description any `mapstructure:"description"`
	Amount      any `mapstructure:"amount"`
	Time        any `mapstructure:"time"`
	Date        any `mapstructure:"date"`
}

// Number coerces v to a float64, treating anything unparseable as 0.
// NaN and infinities are also flattened to 0 so they can never propagate.
func Number(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		f, _ = n.Float64()
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Int coerces v to an int via Number, truncating any fraction.
func Int(v any) int {
	return int(Number(v))
}

// String coerces v to a string; non-string values yield "".
func String(v any) string {
	s, _ := v.(string)
	return s
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate accepts a time.Time, *time.Time or a date-like string and returns
// a pointer to the parsed time. Absent, zero or unparseable input yields nil.
func ParseDate(v any) *time.Time {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return nil
		}
		t := d
		return &t
	case *time.Time:
		if d == nil || d.IsZero() {
			return nil
		}
		t := *d
		return &t
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return &t
			}
		}
	}
	return nil
}

// ComputeTotal sums price*quantity over the given line items. A nil or empty
// sequence totals 0.
func ComputeTotal(items []models.LineItem) float64 {
	total := 0.0
	for _, it := range items {
		total += Number(it.Price) * Number(it.Quantity)
	}
	return total
}

// finiteNumber reports whether v is already a usable numeric value. String
// numerics deliberately do not count; a string total is recomputed instead.
func finiteNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64, float32, int, int32, int64:
		f := Number(n)
		return f, true
	case json.Number:
		f, err := n.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Order builds a canonical order from a loosely-typed record. Missing scalars
// default to zero values, quantities below 1 become 1, an unparseable date
// becomes nil and a missing or non-numeric total is recomputed from the items.
func Order(raw map[string]any) models.Order {
	var r rawOrder
	_ = mapstructure.Decode(raw, &r)

	items := make([]models.LineItem, 0, len(r.Items))
	for _, it := range r.Items {
		q := Int(it.Quantity)
		if q < 1 {
			q = 1
		}
		items = append(items, models.LineItem{
			LunchItem: models.LunchItem{
				ID:    String(it.ID),
				Title: String(it.Title),
				Image: String(it.Image),
				Price: Number(it.Price),
				Tags:  stringSlice(it.Tags),
			},
			Quantity: q,
		})
	}

	total, ok := finiteNumber(r.Total)
	if !ok {
		total = ComputeTotal(items)
	}

	status := String(r.Status)
	if status == "" {
		status = models.OrderStatusPending
	}

	return models.Order{
		ID:        String(r.ID),
		Tower:     String(r.Tower),
		Apartment: Int(r.Apartment),
		Customer:  String(r.Customer),
		Phone:     int64(Number(r.Phone)),
		PayMethod: payMethod(r.PayMethod),
		Items:     items,
		Notes:     String(r.Notes),
		Time:      String(r.Time),
		Date:      ParseDate(r.Date),
		Status:    status,
		Total:     total,
	}
}

// Lunch builds a canonical catalog item from a loosely-typed record. Price is
// clamped at 0, matching the catalog invariant.
func Lunch(raw map[string]any) models.LunchItem {
	var r rawLunch
	_ = mapstructure.Decode(raw, &r)

	price := Number(r.Price)
	if price < 0 {
		price = 0
	}
	return models.LunchItem{
		ID:    String(r.ID),
		Title: String(r.Title),
		Image: String(r.Image),
		Price: price,
		Tags:  stringSlice(r.Tags),
	}
}

// Expense builds a canonical expense from a loosely-typed record.
func Expense(raw map[string]any) models.Expense {
	var r rawExpense
	_ = mapstructure.Decode(raw, &r)

	kind := String(r.Kind)
	if kind == "" {
		kind = models.ExpenseKindPurchase
	}
	return models.Expense{
		ID:          String(r.ID),
		Kind:        kind,
		Title:       String(r.Title),
		Description: String(r.Description),
		Amount:      Number(r.Amount),
		Time:        String(r.Time),
		Date:        ParseDate(r.Date),
	}
}

func payMethod(raw map[string]any) models.PayMethod {
	return models.PayMethod{
		ID:    String(raw["id"]),
		Label: String(raw["label"]),
		Image: String(raw["image"]),
	}
}

func stringSlice(raw []any) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s := String(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
