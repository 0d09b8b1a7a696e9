package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the schema when it does not exist yet. Statements are
// idempotent so running them on every startup is safe. The CHECK on
// available_tickets is a second line of defense; the booking path never
// issues a decrement that could take the column negative.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			username      VARCHAR(50)  NOT NULL UNIQUE,
			password_hash VARCHAR(100) NOT NULL,
			created_at    TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id                BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name              VARCHAR(255) NOT NULL,
			total_tickets     INT          NOT NULL,
			available_tickets INT          NOT NULL,
			price             DOUBLE       NOT NULL,
			created_at        TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CHECK (available_tickets >= 0)
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			reference   CHAR(36)        NOT NULL UNIQUE,
			username    VARCHAR(50)     NOT NULL,
			event_id    BIGINT UNSIGNED NOT NULL,
			quantity    INT             NOT NULL,
			total_price DOUBLE          NOT NULL,
			booked_at   DATETIME        NOT NULL,
			KEY idx_bookings_event (event_id),
			CONSTRAINT fk_bookings_event FOREIGN KEY (event_id) REFERENCES events (id)
		)`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
