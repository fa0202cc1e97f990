package database

import (
	"context"
	"fmt"
)

// Urutan statement penting: tabel induk dulu, baru tabel yang punya FK.
// Constraint UNIQUE (screening_id, seat_id) di seat_bookings adalah penjaga
// utama supaya satu kursi tidak pernah terjual dua kali untuk satu screening;
// ON DELETE CASCADE membebaskan kursi saat booking atau screening dihapus.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		phone VARCHAR(30),
		role VARCHAR(20) NOT NULL DEFAULT 'customer',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token UUID NOT NULL UNIQUE,
		user_agent TEXT,
		ip_address VARCHAR(45),
		expires_at TIMESTAMPTZ NOT NULL,
		revoked_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS movies (
		id UUID PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		duration_minutes INT NOT NULL,
		rating VARCHAR(10),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS theaters (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		city VARCHAR(100) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS halls (
		id UUID PRIMARY KEY,
		theater_id UUID NOT NULL REFERENCES theaters(id) ON DELETE CASCADE,
		hall_number INT NOT NULL,
		total_seats INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (theater_id, hall_number)
	)`,
	`CREATE TABLE IF NOT EXISTS seats (
		id UUID PRIMARY KEY,
		hall_id UUID NOT NULL REFERENCES halls(id) ON DELETE CASCADE,
		label VARCHAR(10) NOT NULL,
		seat_row VARCHAR(5) NOT NULL,
		seat_column INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE (hall_id, label)
	)`,
	`CREATE TABLE IF NOT EXISTS screenings (
		id UUID PRIMARY KEY,
		movie_id UUID NOT NULL REFERENCES movies(id) ON DELETE CASCADE,
		theater_id UUID NOT NULL REFERENCES theaters(id) ON DELETE CASCADE,
		hall_id UUID NOT NULL REFERENCES halls(id) ON DELETE CASCADE,
		starts_at TIMESTAMPTZ NOT NULL,
		price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
		quality VARCHAR(10) NOT NULL DEFAULT '2D',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id UUID PRIMARY KEY,
		order_id VARCHAR(40) NOT NULL UNIQUE,
		user_id UUID NOT NULL REFERENCES users(id),
		screening_id UUID NOT NULL REFERENCES screenings(id) ON DELETE CASCADE,
		total_seats INT NOT NULL CHECK (total_seats > 0),
		total_price NUMERIC(10,2) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS seat_bookings (
		id UUID PRIMARY KEY,
		booking_id UUID NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
		screening_id UUID NOT NULL REFERENCES screenings(id) ON DELETE CASCADE,
		seat_id UUID NOT NULL REFERENCES seats(id),
		created_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT seat_bookings_screening_seat_key UNIQUE (screening_id, seat_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_seat_bookings_booking_id ON seat_bookings(booking_id)`,
	`CREATE INDEX IF NOT EXISTS idx_screenings_starts_at ON screenings(starts_at)`,
}

// Migrate menjalankan schema bootstrap. Semua statement idempotent, jadi
// aman dipanggil setiap kali aplikasi start.
func Migrate(ctx context.Context, db Queryer) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
