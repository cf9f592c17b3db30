package repository

import (
	"context"
	"database/sql"

	"github.com/kasetlink/drone-spray-booking/internal/model"
)

// PricingRepo manages the crop and spray price-per-rai lookup tables.
// Rows are multiplicands in the quote formula and the source of the
// chatbot price card.
type PricingRepo struct{ DB *sql.DB }

func NewPricingRepo(db *sql.DB) *PricingRepo { return &PricingRepo{DB: db} }

// ----- crop types -----

// ListCrops returns all crop rows; includeInactive controls whether
// disabled rows appear (admin pages want them, quoting does not).
func (r *PricingRepo) ListCrops(ctx context.Context, includeInactive bool) ([]model.CropType, error) {
	q := "SELECT id,name,price_per_rai,is_active,created_at,updated_at FROM crop_types"
	if !includeInactive {
		q += " WHERE is_active=1"
	}
	q += " ORDER BY name"
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.CropType, 0)
	for rows.Next() {
		var c model.CropType
		if err := rows.Scan(&c.ID, &c.Name, &c.PricePerRai, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListActiveCrops satisfies the chatbot PriceSource interface.
func (r *PricingRepo) ListActiveCrops(ctx context.Context) ([]model.CropType, error) {
	return r.ListCrops(ctx, false)
}

// GetCrop returns a single crop row.
func (r *PricingRepo) GetCrop(ctx context.Context, id uint64) (model.CropType, error) {
	var c model.CropType
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,price_per_rai,is_active,created_at,updated_at FROM crop_types WHERE id=?",
		id).Scan(&c.ID, &c.Name, &c.PricePerRai, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// CreateCrop inserts a crop row and populates its ID.
func (r *PricingRepo) CreateCrop(ctx context.Context, c *model.CropType) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO crop_types (name, price_per_rai, is_active) VALUES (?,?,?)",
		c.Name, c.PricePerRai, c.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// UpdateCrop rewrites name, rate and active flag.
func (r *PricingRepo) UpdateCrop(ctx context.Context, c model.CropType) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE crop_types SET name=?, price_per_rai=?, is_active=? WHERE id=?",
		c.Name, c.PricePerRai, c.IsActive, c.ID)
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

// ----- spray types -----

// ListSprays mirrors ListCrops for the spray table.
func (r *PricingRepo) ListSprays(ctx context.Context, includeInactive bool) ([]model.SprayType, error) {
	q := "SELECT id,name,price_per_rai,is_active,created_at,updated_at FROM spray_types"
	if !includeInactive {
		q += " WHERE is_active=1"
	}
	q += " ORDER BY name"
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.SprayType, 0)
	for rows.Next() {
		var s model.SprayType
		if err := rows.Scan(&s.ID, &s.Name, &s.PricePerRai, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListActiveSprays satisfies the chatbot PriceSource interface.
func (r *PricingRepo) ListActiveSprays(ctx context.Context) ([]model.SprayType, error) {
	return r.ListSprays(ctx, false)
}

// GetSpray returns a single spray row.
func (r *PricingRepo) GetSpray(ctx context.Context, id uint64) (model.SprayType, error) {
	var s model.SprayType
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,price_per_rai,is_active,created_at,updated_at FROM spray_types WHERE id=?",
		id).Scan(&s.ID, &s.Name, &s.PricePerRai, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// CreateSpray inserts a spray row and populates its ID.
func (r *PricingRepo) CreateSpray(ctx context.Context, s *model.SprayType) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO spray_types (name, price_per_rai, is_active) VALUES (?,?,?)",
		s.Name, s.PricePerRai, s.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// UpdateSpray rewrites name, rate and active flag.
func (r *PricingRepo) UpdateSpray(ctx context.Context, s model.SprayType) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE spray_types SET name=?, price_per_rai=?, is_active=? WHERE id=?",
		s.Name, s.PricePerRai, s.IsActive, s.ID)
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

// ActiveRates resolves the two rates used in a quote. Inactive or
// missing rows return sql.ErrNoRows so handlers render a 404 rather
// than quoting stale prices.
func (r *PricingRepo) ActiveRates(ctx context.Context, cropID, sprayID uint64) (cropRate, sprayRate float64, err error) {
	err = r.DB.QueryRowContext(ctx,
		"SELECT price_per_rai FROM crop_types WHERE id=? AND is_active=1", cropID).Scan(&cropRate)
	if err != nil {
		return 0, 0, err
	}
	err = r.DB.QueryRowContext(ctx,
		"SELECT price_per_rai FROM spray_types WHERE id=? AND is_active=1", sprayID).Scan(&sprayRate)
	if err != nil {
		return 0, 0, err
	}
	return cropRate, sprayRate, nil
}
