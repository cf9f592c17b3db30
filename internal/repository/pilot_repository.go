package repository

import (
	"context"
	"database/sql"

	"github.com/kasetlink/drone-spray-booking/internal/model"
)

// PilotRepo provides CRUD over licensed drone pilots.
type PilotRepo struct{ DB *sql.DB }

func NewPilotRepo(db *sql.DB) *PilotRepo { return &PilotRepo{DB: db} }

const pilotCols = "id,name,phone,license_no,status,notes,created_at,updated_at"

func scanPilot(row rowScanner) (model.Pilot, error) {
	var p model.Pilot
	var notes sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Phone, &p.LicenseNo, &p.Status, &notes, &p.CreatedAt, &p.UpdatedAt)
	if notes.Valid {
		v := notes.String
		p.Notes = &v
	}
	return p, err
}

// List returns all pilots, optionally filtered by status.
func (r *PilotRepo) List(ctx context.Context, status string) ([]model.Pilot, error) {
	q := "SELECT " + pilotCols + " FROM pilots"
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
	out := make([]model.Pilot, 0)
	for rows.Next() {
		p, err := scanPilot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID returns one pilot.
func (r *PilotRepo) GetByID(ctx context.Context, id uint64) (model.Pilot, error) {
	return scanPilot(r.DB.QueryRowContext(ctx, "SELECT "+pilotCols+" FROM pilots WHERE id=?", id))
}

// Create inserts a pilot and populates its ID.
func (r *PilotRepo) Create(ctx context.Context, p *model.Pilot) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO pilots (name, phone, license_no, status, notes) VALUES (?,?,?,?,?)",
		p.Name, p.Phone, p.LicenseNo, p.Status, p.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// Update rewrites the descriptive fields and status.
func (r *PilotRepo) Update(ctx context.Context, p model.Pilot) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE pilots SET name=?, phone=?, license_no=?, status=?, notes=? WHERE id=?",
		p.Name, p.Phone, p.LicenseNo, p.Status, p.Notes, p.ID)
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

// Delete removes a pilot that is not referenced by any booking.
func (r *PilotRepo) Delete(ctx context.Context, id uint64) error {
	var refs int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE pilot_id=?", id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}
	res, err := r.DB.ExecContext(ctx, "DELETE FROM pilots WHERE id=?", id)
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
