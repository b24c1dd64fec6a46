package plant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Repository defines the persistence operations for plants.
//
// Implementations must return ErrPlantNotFound (possibly wrapped) when an
// ID does not exist, and must never reuse an ID after Delete.
type Repository interface {
	List(ctx context.Context) ([]Plant, error)
	Get(ctx context.Context, id int64) (*Plant, error)
	Create(ctx context.Context, in Input) (*Plant, error)
	Update(ctx context.Context, id int64, in Input) (*Plant, error)
	Delete(ctx context.Context, id int64) error
}

// SQLiteRepository implements Repository on the plants table.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed plant repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// List returns every plant in ID order. The slice is empty, never nil,
// when the table has no rows.
func (r *SQLiteRepository) List(ctx context.Context) ([]Plant, error) {
	const query = `SELECT id, name, image, price FROM plants ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying plants: %w", err)
	}
	defer rows.Close()

	plants := make([]Plant, 0)
	for rows.Next() {
		var p Plant
		if err := rows.Scan(&p.ID, &p.Name, &p.Image, &p.Price); err != nil {
			return nil, fmt.Errorf("scanning plant row: %w", err)
		}
		plants = append(plants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plant rows: %w", err)
	}
	return plants, nil
}

// Get returns a single plant by ID.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*Plant, error) {
	const query = `SELECT id, name, image, price FROM plants WHERE id = ?`
	return scanPlant(r.db.QueryRowContext(ctx, query, id), id)
}

// Create inserts a new plant and returns it with its assigned ID.
func (r *SQLiteRepository) Create(ctx context.Context, in Input) (*Plant, error) {
	const query = `INSERT INTO plants (name, image, price) VALUES (?, ?, ?)
		RETURNING id, name, image, price`

	p, err := scanPlant(r.db.QueryRowContext(ctx, query, in.Name, in.Image, in.Price), 0)
	if err != nil {
		return nil, fmt.Errorf("inserting plant: %w", err)
	}
	return p, nil
}

// Update overwrites name, image and price of an existing plant.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, in Input) (*Plant, error) {
	const query = `UPDATE plants SET name = ?, image = ?, price = ? WHERE id = ?
		RETURNING id, name, image, price`

	p, err := scanPlant(r.db.QueryRowContext(ctx, query, in.Name, in.Image, in.Price, id), id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a plant by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM plants WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting plant %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result for plant %d: %w", id, err)
	}
	if affected == 0 {
		return ErrPlantNotFound
	}
	return nil
}

// scanPlant reads one plant from row, mapping sql.ErrNoRows to ErrPlantNotFound.
func scanPlant(row *sql.Row, id int64) (*Plant, error) {
	var p Plant
	if err := row.Scan(&p.ID, &p.Name, &p.Image, &p.Price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlantNotFound
		}
		return nil, fmt.Errorf("scanning plant %d: %w", id, err)
	}
	return &p, nil
}
