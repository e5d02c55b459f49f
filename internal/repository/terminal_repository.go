package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"github.com/Freeeeeet/bus_booking_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TerminalRepository справочник автовокзалов в БД
type TerminalRepository struct {
	*base.Repository
}

func NewTerminalRepository(pool *pgxpool.Pool) *TerminalRepository {
	return &TerminalRepository{Repository: base.NewRepository(pool)}
}

// ListTerminals активные автовокзалы в порядке отображения
func (r *TerminalRepository) ListTerminals(ctx context.Context) ([]model.Terminal, error) {
	query := `
		SELECT name, code
		FROM terminals
		WHERE is_active = true
		ORDER BY sort_order, code
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list terminals: %w", err)
	}
	defer rows.Close()

	var terminals []model.Terminal
	for rows.Next() {
		var t model.Terminal
		if err := rows.Scan(&t.Name, &t.Code); err != nil {
			return nil, fmt.Errorf("scan terminal: %w", err)
		}
		terminals = append(terminals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate terminals: %w", err)
	}

	return terminals, nil
}

// ReplaceAll заменяет справочник целиком, сохраняя порядок terminals
func (r *TerminalRepository) ReplaceAll(ctx context.Context, terminals []model.Terminal) error {
	return r.InTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE terminals SET is_active = false`); err != nil {
			return fmt.Errorf("deactivate terminals: %w", err)
		}

		query := `
			INSERT INTO terminals (code, name, sort_order, is_active)
			VALUES ($1, $2, $3, true)
			ON CONFLICT (code) DO UPDATE
			SET name = EXCLUDED.name, sort_order = EXCLUDED.sort_order, is_active = true
		`
		for i, t := range terminals {
			if _, err := tx.Exec(ctx, query, t.Code, t.Name, i); err != nil {
				return fmt.Errorf("upsert terminal %s: %w", t.Code, err)
			}
		}
		return nil
	})
}
