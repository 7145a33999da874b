package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucsky/cuid"

	"lunchero/internal/normalize"
)

type LunchRepository struct {
	pool *pgxpool.Pool
}

func NewLunchRepository(pool *pgxpool.Pool) *LunchRepository {
	return &LunchRepository{pool: pool}
}

func (r *LunchRepository) List(ctx context.Context) ([]map[string]any, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, title, image, price, tags
        FROM lunches
        ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []map[string]any
	for rows.Next() {
		var (
			id, title, image string
			price            float64
			tags             []byte
		)
		if err := rows.Scan(&id, &title, &image, &price, &tags); err != nil {
			return nil, err
		}
		recs = append(recs, map[string]any{
			"id":    id,
			"title": title,
			"image": image,
			"price": price,
			"tags":  jsonColumn(tags),
		})
	}
	return recs, rows.Err()
}

func (r *LunchRepository) Create(ctx context.Context, payload map[string]any) (map[string]any, error) {
	id := cuid.New()
	_, err := r.pool.Exec(ctx, `
        INSERT INTO lunches (id, title, image, price, tags)
        VALUES ($1, $2, $3, $4, $5)
    `,
		id,
		normalize.String(payload["title"]),
		normalize.String(payload["image"]),
		normalize.Number(payload["price"]),
		jsonBytes(payload["tags"], "[]"),
	)
	if err != nil {
		return nil, err
	}
	return r.get(ctx, id)
}

// lunchColumns maps payload keys to updatable columns.
var lunchColumns = map[string]bool{
	"title": true,
	"image": true,
	"price": true,
	"tags":  true,
}

func (r *LunchRepository) Update(ctx context.Context, id string, payload map[string]any) (map[string]any, error) {
	sets := make([]string, 0, len(payload))
	args := []any{id}
	for key, value := range payload {
		if !lunchColumns[key] {
			continue
		}
		switch key {
		case "price":
			args = append(args, normalize.Number(value))
		case "tags":
			args = append(args, jsonBytes(value, "[]"))
		default:
			args = append(args, normalize.String(value))
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", key, len(args)))
	}
	if len(sets) == 0 {
		return r.get(ctx, id)
	}

	query := fmt.Sprintf("UPDATE lunches SET %s WHERE id = $1", strings.Join(sets, ", "))
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("lunch %s not found", id)
	}
	return r.get(ctx, id)
}

func (r *LunchRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM lunches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lunch %s not found", id)
	}
	return nil
}

func (r *LunchRepository) get(ctx context.Context, id string) (map[string]any, error) {
	var (
		title, image string
		price        float64
		tags         []byte
	)
	err := r.pool.QueryRow(ctx, `
        SELECT title, image, price, tags FROM lunches WHERE id = $1
    `, id).Scan(&title, &image, &price, &tags)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"id":    id,
		"title": title,
		"image": image,
		"price": price,
		"tags":  jsonColumn(tags),
	}, nil
}
