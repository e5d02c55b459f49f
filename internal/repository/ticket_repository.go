package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"github.com/Freeeeeet/bus_booking_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository struct {
	*base.Repository
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{Repository: base.NewRepository(pool)}
}

const ticketColumns = `
	id, reservation_no, telegram_id,
	departure_code, departure_name, arrival_code, arrival_name,
	travel_date, departure_time, arrival_time, company, grade,
	seats, total_price, issued_at
`

// Create сохраняет выданный билет
func (r *TicketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	query := `
		INSERT INTO tickets (
			id, reservation_no, telegram_id,
			departure_code, departure_name, arrival_code, arrival_name,
			travel_date, departure_time, arrival_time, company, grade,
			seats, total_price
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING issued_at
	`

	err := r.QueryRow(
		ctx, query,
		ticket.ID,
		ticket.ReservationNo,
		ticket.TelegramID,
		ticket.Departure.Code,
		ticket.Departure.Name,
		ticket.Arrival.Code,
		ticket.Arrival.Name,
		ticket.TravelDate,
		ticket.DepartureTime,
		ticket.ArrivalTime,
		ticket.Company,
		string(ticket.Grade),
		ticket.Seats,
		ticket.TotalPrice,
	).Scan(&ticket.IssuedAt)

	if err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}

	return nil
}

// ListByTelegramID последние билеты пассажира, новые первыми
func (r *TicketRepository) ListByTelegramID(ctx context.Context, telegramID int64, limit int) ([]*model.Ticket, error) {
	query := `SELECT ` + ticketColumns + `
		FROM tickets
		WHERE telegram_id = $1
		ORDER BY issued_at DESC
		LIMIT $2
	`

	rows, err := r.Query(ctx, query, telegramID, limit)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*model.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tickets: %w", err)
	}

	return tickets, nil
}

func scanTicket(row pgx.Row) (*model.Ticket, error) {
	var (
		t     model.Ticket
		grade string
	)
	err := row.Scan(
		&t.ID,
		&t.ReservationNo,
		&t.TelegramID,
		&t.Departure.Code,
		&t.Departure.Name,
		&t.Arrival.Code,
		&t.Arrival.Name,
		&t.TravelDate,
		&t.DepartureTime,
		&t.ArrivalTime,
		&t.Company,
		&grade,
		&t.Seats,
		&t.TotalPrice,
		&t.IssuedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Grade = model.Grade(grade)
	return &t, nil
}
