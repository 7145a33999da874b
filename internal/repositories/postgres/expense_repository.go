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

type ExpenseRepository struct {
	pool *pgxpool.Pool
}

func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseSelect = `
    SELECT id, kind, title, description, amount, "time", date
    FROM expenses
`

func (r *ExpenseRepository) List(ctx context.Context) ([]map[string]any, error) {
	rows, err := r.pool.Query(ctx, expenseSelect+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []map[string]any
	for rows.Next() {
		rec, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func scanExpense(scan func(dest ...any) error) (map[string]any, error) {
	var (
		id, kind, title, description, timeOfDay string
		amount                                  float64
		date                                    *time.Time
	)
	if err := scan(&id, &kind, &title, &description, &amount, &timeOfDay, &date); err != nil {
		return nil, err
	}
	return map[string]any{
		"id":          id,
		"kind":        kind,
		"title":       title,
		"description": description,
		"amount":      amount,
		"time":        timeOfDay,
		"date":        date,
	}, nil
}

func (r *ExpenseRepository) Create(ctx context.Context, payload map[string]any) (map[string]any, error) {
	id := cuid.New()
	kind := normalize.String(payload["kind"])
	if kind == "" {
		kind = "purchase"
	}
	_, err := r.pool.Exec(ctx, `
        INSERT INTO expenses (id, kind, title, description, amount, "time", date)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `,
		id,
		kind,
		normalize.String(payload["title"]),
		normalize.String(payload["description"]),
		normalize.Number(payload["amount"]),
		normalize.String(payload["time"]),
		dateValue(payload["date"]),
	)
	if err != nil {
		return nil, err
	}
	return r.get(ctx, id)
}

var expenseColumns = map[string]bool{
	"kind":        true,
	"title":       true,
	"description": true,
	"amount":      true,
	"time":        true,
	"date":        true,
}

func (r *ExpenseRepository) Update(ctx context.Context, id string, payload map[string]any) (map[string]any, error) {
	sets := make([]string, 0, len(payload))
	args := []any{id}
	for key, value := range payload {
		if !expenseColumns[key] {
			continue
		}
		switch key {
		case "amount":
			args = append(args, normalize.Number(value))
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

	query := fmt.Sprintf("UPDATE expenses SET %s WHERE id = $1", strings.Join(sets, ", "))
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("expense %s not found", id)
	}
	return r.get(ctx, id)
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expense %s not found", id)
	}
	return nil
}

func (r *ExpenseRepository) get(ctx context.Context, id string) (map[string]any, error) {
	row := r.pool.QueryRow(ctx, expenseSelect+` WHERE id = $1`, id)
	return scanExpense(row.Scan)
}
