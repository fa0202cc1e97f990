package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinema-reservation/internal/apperr"
	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// queryerStub hanya mengimplementasikan Exec; Query/QueryRow tidak dipakai
// oleh operasi yang diuji di sini.
type queryerStub struct {
	execFn    func(sql string, args []any) (pgconn.CommandTag, error)
	execCalls int
}

func (q *queryerStub) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.execCalls++
	return q.execFn(sql, args)
}

func (q *queryerStub) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("query not supported in stub")
}

func (q *queryerStub) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func newLedger() *seatBookingRepository {
	return &seatBookingRepository{log: zap.NewNop()}
}

// rowsStub memutar sejumlah baris lalu melaporkan iterErr lewat Err(),
// meniru koneksi yang putus di tengah iterasi.
type rowsStub struct {
	pgx.Rows
	values  []any
	iterErr error
	pos     int
}

func (r *rowsStub) Next() bool {
	if r.pos >= len(r.values) {
		return false
	}
	r.pos++
	return true
}

func (r *rowsStub) Scan(dest ...any) error {
	switch d := dest[0].(type) {
	case *string:
		*d = r.values[r.pos-1].(string)
	case *uuid.UUID:
		*d = r.values[r.pos-1].(uuid.UUID)
	}
	return nil
}

func (r *rowsStub) Err() error { return r.iterErr }
func (r *rowsStub) Close()     {}

type dbStub struct {
	database.PgxIface
	rows pgx.Rows
}

func (d *dbStub) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return d.rows, nil
}

func makeSeats(labels ...string) []*entity.Seat {
	seats := make([]*entity.Seat, 0, len(labels))
	for _, label := range labels {
		seats = append(seats, &entity.Seat{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			Label:      label,
		})
	}
	return seats
}

func TestReserveTxAllSeatsInserted(t *testing.T) {
	q := &queryerStub{
		execFn: func(sql string, args []any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("INSERT 0 1"), nil
		},
	}

	err := newLedger().ReserveTx(context.Background(), q, uuid.New(), uuid.New(), makeSeats("A1", "A2", "A3"))

	require.NoError(t, err)
	assert.Equal(t, 3, q.execCalls)
}

func TestReserveTxUniqueViolationIsSeatConflict(t *testing.T) {
	// Kursi kedua sudah terisi
	calls := 0
	q := &queryerStub{
		execFn: func(sql string, args []any) (pgconn.CommandTag, error) {
			calls++
			if calls == 2 {
				return pgconn.CommandTag{}, &pgconn.PgError{
					Code:           pgUniqueViolation,
					ConstraintName: "seat_bookings_screening_seat_key",
				}
			}
			return pgconn.NewCommandTag("INSERT 0 1"), nil
		},
	}

	err := newLedger().ReserveTx(context.Background(), q, uuid.New(), uuid.New(), makeSeats("A1", "B2", "C3"))

	require.Error(t, err)
	assert.Equal(t, apperr.KindSeatConflict, apperr.KindOf(err))
	assert.Equal(t, []string{"B2"}, apperr.SeatsOf(err))

	// Berhenti di kursi yang konflik, kursi ketiga tidak pernah dicoba
	assert.Equal(t, 2, q.execCalls)
}

func TestReserveTxOtherErrorsAreNotConflicts(t *testing.T) {
	q := &queryerStub{
		execFn: func(sql string, args []any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, errors.New("connection reset")
		},
	}

	err := newLedger().ReserveTx(context.Background(), q, uuid.New(), uuid.New(), makeSeats("A1"))

	require.Error(t, err)
	assert.NotEqual(t, apperr.KindSeatConflict, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "A1")
}

func TestDeleteByBookingIDTxIdempotent(t *testing.T) {
	q := &queryerStub{
		execFn: func(sql string, args []any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("DELETE 0"), nil
		},
	}

	// Nol baris terhapus bukan error
	err := newLedger().DeleteByBookingIDTx(context.Background(), q, uuid.New())
	require.NoError(t, err)
}

func TestFindLabelsByBookingIDReportsIterationError(t *testing.T) {
	// Satu baris sempat terbaca sebelum koneksi putus; hasil yang terpotong
	// tidak boleh dikembalikan sebagai sukses.
	rows := &rowsStub{
		values:  []any{"A1"},
		iterErr: errors.New("unexpected EOF on connection"),
	}
	repo := &seatBookingRepository{db: &dbStub{rows: rows}, log: zap.NewNop()}

	labels, err := repo.FindLabelsByBookingID(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected EOF")
	assert.Nil(t, labels)
}

func TestFindTakenSeatIDsReportsIterationError(t *testing.T) {
	rows := &rowsStub{
		values:  []any{uuid.New()},
		iterErr: errors.New("unexpected EOF on connection"),
	}
	repo := &seatBookingRepository{db: &dbStub{rows: rows}, log: zap.NewNop()}

	ids, err := repo.FindTakenSeatIDs(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Nil(t, ids)
}
