package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/garage-admin/garage/internal/platform/db"
	"github.com/garage-admin/garage/internal/shared"
)

var (
	seedTypes  = []string{"Car", "Truck", "Motorcycle", "Van"}
	seedBrands = []string{"Ford", "Chevrolet", "Fiat", "Renault", "Toyota", "Volkswagen"}
)

// seed inserts the demo rows that are missing and reports how many were
// written. Running it twice writes nothing the second time.
func seed(ctx context.Context, b db.Beginner) (int64, error) {
	var written int64
	err := db.WithTx(ctx, b, func(tx pgx.Tx) error {
		for _, name := range seedTypes {
			tag, err := tx.Exec(ctx, `
				INSERT INTO vehicle_types (name)
				SELECT $1::varchar WHERE NOT EXISTS (SELECT 1 FROM vehicle_types WHERE lower(name) = lower($1))`, name)
			if err != nil {
				return fmt.Errorf("seed type %s: %w", name, err)
			}
			written += tag.RowsAffected()
		}
		for _, name := range seedBrands {
			tag, err := tx.Exec(ctx, `
				INSERT INTO brands (name, name_key) VALUES ($1, $2)
				ON CONFLICT (name_key) DO NOTHING`, name, shared.NaturalKey(name))
			if err != nil {
				return fmt.Errorf("seed brand %s: %w", name, err)
			}
			written += tag.RowsAffected()
		}

		var clients int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM clients`).Scan(&clients); err != nil {
			return fmt.Errorf("seed count clients: %w", err)
		}
		if clients > 0 {
			return nil
		}
		var clientID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO clients (first_name, last_name, email, phone, city)
			VALUES ('John', 'Doe', 'john.doe@example.com', '555-0100', 'Springfield')
			RETURNING id`).Scan(&clientID)
		if err != nil {
			return fmt.Errorf("seed client: %w", err)
		}
		tag, err := tx.Exec(ctx, `
			INSERT INTO vehicles (type_id, brand_id, model, year, color, license_plate, kilometers, client_id)
			SELECT t.id, b.id, 'Fiesta', 2015, 'Red', 'ABC-1234', 120000, $1
			FROM vehicle_types t, brands b
			WHERE t.name = 'Car' AND b.name_key = $2`, clientID, shared.NaturalKey("Ford"))
		if err != nil {
			return fmt.Errorf("seed vehicle: %w", err)
		}
		written += 1 + tag.RowsAffected()
		return nil
	})
	return written, err
}
