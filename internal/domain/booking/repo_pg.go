package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docport/docport/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type bookingRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &bookingRepoPG{pool: pool} }

func (r *bookingRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const bookingCols = `id, appointment_date, treatment, slot, patient_name, email, phone,
	price, paid, COALESCE(transaction_id, ''), created_at`

func (r *bookingRepoPG) scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.AppointmentDate, &b.Treatment, &b.Slot, &b.Patient,
		&b.Email, &b.Phone, &b.Price, &b.Paid, &b.TransactionID, &b.CreatedAt)
	return &b, err
}

func (r *bookingRepoPG) Create(ctx context.Context, b *Booking) error {
	b.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO bookings (id, appointment_date, treatment, slot, patient_name, email, phone, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID, b.AppointmentDate, b.Treatment, b.Slot, b.Patient, b.Email, b.Phone, b.Price)
	return err
}

func (r *bookingRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return r.scanBooking(r.conn(ctx).QueryRow(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id = $1`, id))
}

func (r *bookingRepoPG) ListByEmail(ctx context.Context, email string) ([]*Booking, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE email = $1 ORDER BY created_at DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Booking
	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

func (r *bookingRepoPG) HasBooking(ctx context.Context, date, treatment, email string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE appointment_date = $1 AND treatment = $2 AND email = $3
		)`, date, treatment, email).Scan(&exists)
	return exists, err
}

func (r *bookingRepoPG) MarkPaid(ctx context.Context, id uuid.UUID, transactionID string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE bookings SET paid = true, transaction_id = $2 WHERE id = $1`,
		id, transactionID)
	return err
}
