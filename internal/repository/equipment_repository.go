package repository

import (
	"context"
	"database/sql"

	"github.com/kasetlink/drone-spray-booking/internal/model"
)

// EquipmentRepo provides CRUD over rentable ground equipment.
type EquipmentRepo struct{ DB *sql.DB }

func NewEquipmentRepo(db *sql.DB) *EquipmentRepo { return &EquipmentRepo{DB: db} }

const equipmentCols = "id,name,description,daily_rate,status,created_at,updated_at"

func scanEquipment(row rowScanner) (model.Equipment, error) {
	var e model.Equipment
	var desc sql.NullString
	err := row.Scan(&e.ID, &e.Name, &desc, &e.DailyRate, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if desc.Valid {
		v := desc.String
		e.Description = &v
	}
	return e, err
}

// List returns equipment, optionally filtered by status. The public
// rental page passes "available".
func (r *EquipmentRepo) List(ctx context.Context, status string) ([]model.Equipment, error) {
	q := "SELECT " + equipmentCols + " FROM equipment"
	var args []interface{}
	if status != "" {
		q += " WHERE status=?"
		args = append(args, status)
	}
	q += " ORDER BY name"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetByID returns one equipment row.
func (r *EquipmentRepo) GetByID(ctx context.Context, id uint64) (model.Equipment, error) {
	return scanEquipment(r.DB.QueryRowContext(ctx, "SELECT "+equipmentCols+" FROM equipment WHERE id=?", id))
}

// Create inserts an equipment row and populates its ID.
func (r *EquipmentRepo) Create(ctx context.Context, e *model.Equipment) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO equipment (name, description, daily_rate, status) VALUES (?,?,?,?)",
		e.Name, e.Description, e.DailyRate, e.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// Update rewrites the descriptive fields and status.
func (r *EquipmentRepo) Update(ctx context.Context, e model.Equipment) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE equipment SET name=?, description=?, daily_rate=?, status=? WHERE id=?",
		e.Name, e.Description, e.DailyRate, e.Status, e.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an equipment row.
func (r *EquipmentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM equipment WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
