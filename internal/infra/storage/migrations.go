package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaSQL bootstrap-схема сервиса
//
// Уникальный индекс bookings_tables (table_id, booking_time) - страховка
// от двойного бронирования стола на один момент времени: проигравший
// конкурирующий коммит получает нарушение ограничения атомарно
const schemaSQL = `
CREATE TABLE IF NOT EXISTS locations (
	id BIGSERIAL PRIMARY KEY,
	name TEXT UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS cuisines (
	id BIGSERIAL PRIMARY KEY,
	name TEXT UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS restaurants (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	slug TEXT UNIQUE NOT NULL,
	main_image TEXT NOT NULL DEFAULT '',
	price TEXT NOT NULL CHECK (price IN ('CHEAP', 'REGULAR', 'EXPENSIVE')),
	open_time TEXT NOT NULL,
	close_time TEXT NOT NULL,
	location_id BIGINT NOT NULL REFERENCES locations(id),
	cuisine_id BIGINT NOT NULL REFERENCES cuisines(id),
	CHECK (open_time < close_time)
);

CREATE TABLE IF NOT EXISTS tables (
	id BIGSERIAL PRIMARY KEY,
	restaurant_id BIGINT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
	seats INT NOT NULL CHECK (seats > 0)
);

CREATE TABLE IF NOT EXISTS bookings (
	id BIGSERIAL PRIMARY KEY,
	restaurant_id BIGINT NOT NULL REFERENCES restaurants(id),
	number_of_people INT NOT NULL CHECK (number_of_people > 0),
	booking_time TIMESTAMPTZ NOT NULL,
	booker_email TEXT NOT NULL,
	booker_first_name TEXT NOT NULL,
	booker_last_name TEXT NOT NULL,
	booker_phone TEXT NOT NULL,
	booker_occasion TEXT,
	booker_request TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bookings_tables (
	booking_id BIGINT NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
	table_id BIGINT NOT NULL REFERENCES tables(id),
	booking_time TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (booking_id, table_id),
	UNIQUE (table_id, booking_time)
);

CREATE INDEX IF NOT EXISTS idx_restaurants_slug ON restaurants(slug);
CREATE INDEX IF NOT EXISTS idx_tables_restaurant ON tables(restaurant_id);
CREATE INDEX IF NOT EXISTS idx_bookings_restaurant_time ON bookings(restaurant_id, booking_time);
CREATE INDEX IF NOT EXISTS idx_bookings_tables_time ON bookings_tables(booking_time);
`

// Migrate применяет bootstrap-схему
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("storage: apply schema: %w", err)
	}
	return nil
}
