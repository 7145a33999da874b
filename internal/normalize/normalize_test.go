package normalize

import (
	"testing"
	"time"

	"lunchero/internal/models"
)

func TestComputeTotalEmpty(t *testing.T) {
	if got := ComputeTotal(nil); got != 0 {
		t.Fatalf("expected 0 for nil items, got %v", got)
	}
	if got := ComputeTotal([]models.LineItem{}); got != 0 {
		t.Fatalf("expected 0 for empty items, got %v", got)
	}
}

func TestComputeTotalSumsPriceTimesQuantity(t *testing.T) {
	items := []models.LineItem{
		{LunchItem: models.LunchItem{Price: 1000}, Quantity: 2},
		{LunchItem: models.LunchItem{Price: 500}, Quantity: 1},
	}
	if got := ComputeTotal(items); got != 2500 {
		t.Fatalf("expected 2500, got %v", got)
	}
}

func TestNumberCoercion(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{"1000", 1000},
		{" 12.5 ", 12.5},
		{1000, 1000},
		{12.5, 12.5},
		{"not-a-number", 0},
		{nil, 0},
		{true, 0},
	}
	for _, c := range cases {
		if got := Number(c.in); got != c.want {
			t.Errorf("Number(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestOrderCoercesStringNumerics(t *testing.T) {
	raw := map[string]any{
		"items": []any{
			map[string]any{"id": "a", "price": "1000", "quantity": "2"},
		},
	}
	order := Order(raw)
	if order.Total != 2000 {
		t.Fatalf("expected total 2000, got %v", order.Total)
	}
	if order.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", order.Items[0].Quantity)
	}
	if order.Items[0].Price != 1000 {
		t.Fatalf("expected price 1000, got %v", order.Items[0].Price)
	}
}

func TestOrderInvalidDateBecomesNil(t *testing.T) {
	order := Order(map[string]any{"date": "not-a-date"})
	if order.Date != nil {
		t.Fatalf("expected nil date, got %v", order.Date)
	}
}

func TestOrderParsesDateStrings(t *testing.T) {
	order := Order(map[string]any{"date": "2024-03-10T08:00:00"})
	if order.Date == nil {
		t.Fatal("expected a parsed date")
	}
	y, m, d := order.Date.Date()
	if y != 2024 || m != time.March || d != 10 {
		t.Fatalf("unexpected date: %v", order.Date)
	}
}

func TestOrderDefaultsMissingScalars(t *testing.T) {
	order := Order(map[string]any{})
	if order.Tower != "" || order.Apartment != 0 || order.Phone != 0 {
		t.Fatalf("expected zero-valued scalars, got %+v", order)
	}
	if order.Status != models.OrderStatusPending {
		t.Fatalf("expected default status pending, got %q", order.Status)
	}
	if order.Total != 0 {
		t.Fatalf("expected total 0, got %v", order.Total)
	}
}

func TestOrderQuantityDefaultsToOne(t *testing.T) {
	raw := map[string]any{
		"items": []any{
			map[string]any{"id": "a", "price": 500},
			map[string]any{"id": "b", "price": 500, "quantity": "garbage"},
		},
	}
	order := Order(raw)
	for i, it := range order.Items {
		if it.Quantity != 1 {
			t.Fatalf("item %d: expected quantity 1, got %d", i, it.Quantity)
		}
	}
	if order.Total != 1000 {
		t.Fatalf("expected total 1000, got %v", order.Total)
	}
}

func TestOrderTotalPassThroughOnlyForNumbers(t *testing.T) {
	items := []any{map[string]any{"id": "a", "price": 1000, "quantity": 2}}

	order := Order(map[string]any{"items": items, "total": 900.0})
	if order.Total != 900 {
		t.Fatalf("numeric total should pass through, got %v", order.Total)
	}

	order = Order(map[string]any{"items": items, "total": "900"})
	if order.Total != 2000 {
		t.Fatalf("string total should be recomputed, got %v", order.Total)
	}
}

func TestLunchClampsNegativePrice(t *testing.T) {
	lunch := Lunch(map[string]any{"id": "l1", "title": "Soup", "price": -10})
	if lunch.Price != 0 {
		t.Fatalf("expected price clamped to 0, got %v", lunch.Price)
	}
}

func TestLunchCoercesTags(t *testing.T) {
	lunch := Lunch(map[string]any{"tags": []any{"rice", "soup", 3}})
	if len(lunch.Tags) != 2 || lunch.Tags[0] != "rice" || lunch.Tags[1] != "soup" {
		t.Fatalf("unexpected tags: %v", lunch.Tags)
	}
}

func TestExpenseDefaults(t *testing.T) {
	expense := Expense(map[string]any{"amount": "2500"})
	if expense.Amount != 2500 {
		t.Fatalf("expected amount 2500, got %v", expense.Amount)
	}
	if expense.Kind != models.ExpenseKindPurchase {
		t.Fatalf("expected default kind purchase, got %q", expense.Kind)
	}
}

func TestParseDateAcceptsTimeValues(t *testing.T) {
	ref := time.Date(2024, 2, 29, 12, 0, 0, 0, time.Local)
	if got := ParseDate(ref); got == nil || !got.Equal(ref) {
		t.Fatalf("expected %v, got %v", ref, got)
	}
	if got := ParseDate(&ref); got == nil || !got.Equal(ref) {
		t.Fatalf("expected %v, got %v", ref, got)
	}
	if got := ParseDate(nil); got != nil {
		t.Fatalf("expected nil for nil input, got %v", got)
	}
	if got := ParseDate(""); got != nil {
		t.Fatalf("expected nil for empty string, got %v", got)
	}
}
