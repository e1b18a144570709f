package db

import (
	"context"
	"fmt"
)

const locationColumns = `id, name, created_at`

func scanLocation(row interface{ Scan(...any) error }) (Location, error) {
	var l Location
	err := row.Scan(&l.ID, &l.Name, &l.CreatedAt)
	return l, err
}

const createLocation = `INSERT INTO locations (name) VALUES (?)`

func (q *Queries) CreateLocation(ctx context.Context, name string) (Location, error) {
	res, err := q.db.ExecContext(ctx, createLocation, name)
	if err != nil {
		return Location{}, fmt.Errorf("create location %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Location{}, err
	}
	return q.GetLocationByID(ctx, id)
}

const getLocationByID = `SELECT ` + locationColumns + ` FROM locations WHERE id = ?`

func (q *Queries) GetLocationByID(ctx context.Context, id int64) (Location, error) {
	l, err := scanLocation(q.db.QueryRowContext(ctx, getLocationByID, id))
	return l, notFound(err)
}

const getLocationByName = `SELECT ` + locationColumns + ` FROM locations WHERE name = ? ORDER BY id LIMIT 1`

func (q *Queries) GetLocationByName(ctx context.Context, name string) (Location, error) {
	l, err := scanLocation(q.db.QueryRowContext(ctx, getLocationByName, name))
	return l, notFound(err)
}

const listLocations = `SELECT ` + locationColumns + ` FROM locations ORDER BY name`

func (q *Queries) ListLocations(ctx context.Context) ([]Location, error) {
	rows, err := q.db.QueryContext(ctx, listLocations)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var items []Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

const deleteLocation = `DELETE FROM locations WHERE id = ?`

// DeleteLocation remove o local; os posts ficam com location_id nulo.
// Nenhuma rota apaga locais: a função existe para fixar o ON DELETE SET NULL.
func (q *Queries) DeleteLocation(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteLocation, id)
	if err != nil {
		return fmt.Errorf("delete location %d: %w", id, err)
	}
	return rowsAffected(res)
}
