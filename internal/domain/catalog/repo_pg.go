package catalog

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

type optionRepoPG struct{ pool *pgxpool.Pool }

func NewOptionRepoPG(pool *pgxpool.Pool) OptionRepository { return &optionRepoPG{pool: pool} }

func (r *optionRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *optionRepoPG) List(ctx context.Context) ([]*AppointmentOption, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT id, name, price, slots FROM appointment_options ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opts []*AppointmentOption
	for rows.Next() {
		var o AppointmentOption
		if err := rows.Scan(&o.ID, &o.Name, &o.Price, &o.Slots); err != nil {
			return nil, err
		}
		opts = append(opts, &o)
	}
	return opts, rows.Err()
}

func (r *optionRepoPG) ListNames(ctx context.Context) ([]*Specialty, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT id, name FROM appointment_options ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []*Specialty
	for rows.Next() {
		var s Specialty
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		names = append(names, &s)
	}
	return names, rows.Err()
}

// ListAvailable computes availability in one query: each option's slot
// array is unnested with its position, anti-joined against bookings on
// the queried date, and re-aggregated in the original order. Options
// whose slots are all booked still appear, with an empty array.
func (r *optionRepoPG) ListAvailable(ctx context.Context, date string) ([]*AppointmentOption, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT o.id, o.name, o.price,
			COALESCE(
				array_agg(s.slot ORDER BY s.ord)
					FILTER (WHERE s.slot IS NOT NULL AND b.slot IS NULL),
				'{}'
			) AS remaining
		FROM appointment_options o
		LEFT JOIN LATERAL unnest(o.slots) WITH ORDINALITY AS s(slot, ord) ON true
		LEFT JOIN bookings b
			ON b.treatment = o.name AND b.appointment_date = $1 AND b.slot = s.slot
		GROUP BY o.id, o.name, o.price
		ORDER BY o.name`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opts []*AppointmentOption
	for rows.Next() {
		var o AppointmentOption
		if err := rows.Scan(&o.ID, &o.Name, &o.Price, &o.Slots); err != nil {
			return nil, err
		}
		opts = append(opts, &o)
	}
	return opts, rows.Err()
}

func (r *optionRepoPG) BookedSlots(ctx context.Context, date string) (map[string][]string, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT treatment, slot FROM bookings WHERE appointment_date = $1`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	booked := make(map[string][]string)
	for rows.Next() {
		var treatment, slot string
		if err := rows.Scan(&treatment, &slot); err != nil {
			return nil, err
		}
		booked[treatment] = append(booked[treatment], slot)
	}
	return booked, rows.Err()
}

func (r *optionRepoPG) Create(ctx context.Context, opt *AppointmentOption) error {
	opt.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO appointment_options (id, name, price, slots) VALUES ($1, $2, $3, $4)`,
		opt.ID, opt.Name, opt.Price, opt.Slots)
	return err
}

func (r *optionRepoPG) Count(ctx context.Context) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM appointment_options`).Scan(&n)
	return n, err
}
