package repository

import (
	"context"
	"database/sql"

	"github.com/kasetlink/drone-spray-booking/internal/model"
)

// DroneRepo provides CRUD over the drone fleet inventory.
type DroneRepo struct{ DB *sql.DB }

func NewDroneRepo(db *sql.DB) *DroneRepo { return &DroneRepo{DB: db} }

const droneCols = "id,name,model,tank_liters,status,notes,created_at,updated_at"

func scanDrone(row rowScanner) (model.Drone, error) {
	var d model.Drone
	var notes sql.NullString
	err := row.Scan(&d.ID, &d.Name, &d.Model, &d.TankLiters, &d.Status, &notes, &d.CreatedAt, &d.UpdatedAt)
	if notes.Valid {
		v := notes.String
		d.Notes = &v
	}
	return d, err
}

// List returns all drones, optionally filtered by status.
func (r *DroneRepo) List(ctx context.Context, status string) ([]model.Drone, error) {
	q := "SELECT " + droneCols + " FROM drones"
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
	out := make([]model.Drone, 0)
	for rows.Next() {
		d, err := scanDrone(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetByID returns one drone.
func (r *DroneRepo) GetByID(ctx context.Context, id uint64) (model.Drone, error) {
	return scanDrone(r.DB.QueryRowContext(ctx, "SELECT "+droneCols+" FROM drones WHERE id=?", id))
}

// Create inserts a drone and populates its ID.
func (r *DroneRepo) Create(ctx context.Context, d *model.Drone) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO drones (name, model, tank_liters, status, notes) VALUES (?,?,?,?,?)",
		d.Name, d.Model, d.TankLiters, d.Status, d.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return nil
}

// Update rewrites the descriptive fields and status.
func (r *DroneRepo) Update(ctx context.Context, d model.Drone) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE drones SET name=?, model=?, tank_liters=?, status=?, notes=? WHERE id=?",
		d.Name, d.Model, d.TankLiters, d.Status, d.Notes, d.ID)
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

// Delete removes a drone that is not referenced by any booking.
func (r *DroneRepo) Delete(ctx context.Context, id uint64) error {
	var refs int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE drone_id=?", id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}
	res, err := r.DB.ExecContext(ctx, "DELETE FROM drones WHERE id=?", id)
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
