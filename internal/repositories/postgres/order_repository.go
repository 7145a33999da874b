package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucsky/cuid"

	"lunchero/internal/normalize"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const orderSelect = `
    SELECT id, tower, apartment, customer, phone, pay_method, items,
           notes, "time", date, status, total
    FROM orders
`

func (r *OrderRepository) List(ctx context.Context) ([]map[string]any, error) {
	rows, err := r.pool.Query(ctx, orderSelect+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []map[string]any
	for rows.Next() {
		rec, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func scanOrder(scan func(dest ...any) error) (map[string]any, error) {
	var (
		id, tower, customer, notes, timeOfDay, status string
		apartment                                     int
		phone                                         int64
		payMethod, items                              []byte
		date                                          *time.Time
		total                                         float64
	)
	if err := scan(&id, &tower, &apartment, &customer, &phone, &payMethod, &items,
		&notes, &timeOfDay, &date, &status, &total); err != nil {
		return nil, err
	}
	return map[string]any{
		"id":         id,
		"tower":      tower,
		"apartment":  apartment,
		"customer":   customer,
		"phone":      phone,
		"pay_method": jsonColumn(payMethod),
		"items":      jsonColumn(items),
		"notes":      notes,
		"time":       timeOfDay,
		"date":       date,
		"status":     status,
		"total":      total,
	}, nil
}

func (r *OrderRepository) Create(ctx context.Context, payload map[string]any) (map[string]any, error) {
	id := cuid.New()
	status := normalize.String(payload["status"])
	if status == "" {
		status = "pending"
	}
	_, err := r.pool.Exec(ctx, `
        INSERT INTO orders (id, tower, apartment, customer, phone, pay_method,
                            items, notes, "time", date, status, total)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `,
		id,
		normalize.String(payload["tower"]),
		normalize.Int(payload["apartment"]),
		normalize.String(payload["customer"]),
		int64(normalize.Number(payload["phone"])),
		jsonBytes(payload["pay_method"], "{}"),
		jsonBytes(payload["items"], "[]"),
		normalize.String(payload["notes"]),
		normalize.String(payload["time"]),
		dateValue(payload["date"]),
		status,
		normalize.Number(payload["total"]),
	)
	if err != nil {
		return nil, err
	}
	return r.get(ctx, id)
}

var orderColumns = map[string]bool{
	"tower":      true,
	"apartment":  true,
	"customer":   true,
	"phone":      true,
	"pay_method": true,
	"items":      true,
	"notes":      true,
	"time":       true,
	"date":       true,
	"status":     true,
	"total":      true,
}

func (r *OrderRepository) Update(ctx context.Context, id string, payload map[string]any) (map[string]any, error) {
	sets := make([]string, 0, len(payload))
	args := []any{id}
	for key, value := range payload {
		if !orderColumns[key] {
			continue
		}
		switch key {
		case "apartment":
			args = append(args, normalize.Int(value))
		case "phone":
			args = append(args, int64(normalize.Number(value)))
		case "total":
			args = append(args, normalize.Number(value))
		case "pay_method":
			args = append(args, jsonBytes(value, "{}"))
		case "items":
			args = append(args, jsonBytes(value, "[]"))
		case "date":
			args = append(args, dateValue(value))
		default:
			args = append(args, normalize.String(value))
		}
		sets = append(sets, fmt.Sprintf("%q = $%d", key, len(args)))
	}
	if len(sets) == 0 {
		return r.get(ctx, id)
	}

	query := fmt.Sprintf("UPDATE orders SET %s WHERE id = $1", strings.Join(sets, ", "))
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("order %s not found", id)
	}
	return r.get(ctx, id)
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", id)
	}
	return nil
}

func (r *OrderRepository) get(ctx context.Context, id string) (map[string]any, error) {
	row := r.pool.QueryRow(ctx, orderSelect+` WHERE id = $1`, id)
	return scanOrder(row.Scan)
}
