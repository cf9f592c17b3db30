package repository

import (
	"context"
	"database/sql"

	"github.com/kasetlink/drone-spray-booking/internal/model"
)

// BookingRepo provides persistence for spray bookings. Bookings are never
// deleted; every lifecycle change is a status transition validated
// against the model transition table.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// bookingCols joins bookings with their pricing rows so the chatbot and
// admin lists can render names without extra lookups.
const bookingSelect = `SELECT b.id, b.user_id, b.line_user_id, b.customer_name, b.customer_phone,
       b.area_rai, b.crop_type_id, b.spray_type_id, ct.name, st.name,
       b.total_price, b.deposit, b.status, b.scheduled_at,
       b.drone_id, b.pilot_id, b.payment_slip_ref, b.created_at, b.updated_at
  FROM bookings b
  JOIN crop_types ct ON ct.id = b.crop_type_id
  JOIN spray_types st ON st.id = b.spray_type_id`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (model.Booking, error) {
	var (
		bk          model.Booking
		userID      sql.NullInt64
		lineUserID  sql.NullString
		scheduledAt sql.NullTime
		droneID     sql.NullInt64
		pilotID     sql.NullInt64
		slipRef     sql.NullString
	)
	err := row.Scan(
		&bk.ID, &userID, &lineUserID, &bk.CustomerName, &bk.CustomerPhone,
		&bk.AreaRai, &bk.CropTypeID, &bk.SprayTypeID, &bk.CropName, &bk.SprayName,
		&bk.TotalPrice, &bk.Deposit, &bk.Status, &scheduledAt,
		&droneID, &pilotID, &slipRef, &bk.CreatedAt, &bk.UpdatedAt,
	)
	if err != nil {
		return bk, err
	}
	if userID.Valid {
		v := uint64(userID.Int64)
		bk.UserID = &v
	}
	if lineUserID.Valid {
		v := lineUserID.String
		bk.LineUserID = &v
	}
	if scheduledAt.Valid {
		v := scheduledAt.Time
		bk.ScheduledAt = &v
	}
	if droneID.Valid {
		v := uint64(droneID.Int64)
		bk.DroneID = &v
	}
	if pilotID.Valid {
		v := uint64(pilotID.Int64)
		bk.PilotID = &v
	}
	if slipRef.Valid {
		v := slipRef.String
		bk.PaymentSlipRef = &v
	}
	return bk, nil
}

// Create inserts a booking in pending_payment and populates the
// generated ID. Totals must already be computed by the caller.
func (r *BookingRepo) Create(ctx context.Context, bk *model.Booking) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO bookings
		 (user_id, line_user_id, customer_name, customer_phone, area_rai,
		  crop_type_id, spray_type_id, total_price, deposit, status, scheduled_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		bk.UserID, bk.LineUserID, bk.CustomerName, bk.CustomerPhone, bk.AreaRai,
		bk.CropTypeID, bk.SprayTypeID, bk.TotalPrice, bk.Deposit,
		model.BookingPendingPayment, bk.ScheduledAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	bk.ID = uint64(id)
	bk.Status = model.BookingPendingPayment
	return nil
}

// GetByID returns one booking with pricing names resolved.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	return scanBooking(r.DB.QueryRowContext(ctx, bookingSelect+" WHERE b.id=?", id))
}

// ListByUser returns a user's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return r.list(ctx, " WHERE b.user_id=? ORDER BY b.created_at DESC", userID)
}

// ListAll returns bookings for the admin order page, optionally filtered
// by status, newest first.
func (r *BookingRepo) ListAll(ctx context.Context, status string) ([]model.Booking, error) {
	if status != "" {
		return r.list(ctx, " WHERE b.status=? ORDER BY b.created_at DESC", status)
	}
	return r.list(ctx, " ORDER BY b.created_at DESC")
}

// LatestByLineUser returns the newest booking made under a LINE user id,
// or nil when none exists. Used by the chatbot status command.
func (r *BookingRepo) LatestByLineUser(ctx context.Context, lineUserID string) (*model.Booking, error) {
	bk, err := scanBooking(r.DB.QueryRowContext(ctx,
		bookingSelect+" WHERE b.line_user_id=? ORDER BY b.created_at DESC LIMIT 1", lineUserID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bk, nil
}

// RecentByLineUser returns up to limit bookings for a LINE user id,
// newest first. Used by the chatbot history command.
func (r *BookingRepo) RecentByLineUser(ctx context.Context, lineUserID string, limit int) ([]model.Booking, error) {
	if limit <= 0 {
		limit = 5
	}
	return r.list(ctx, " WHERE b.line_user_id=? ORDER BY b.created_at DESC LIMIT ?", lineUserID, limit)
}

func (r *BookingRepo) list(ctx context.Context, tail string, args ...interface{}) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, bookingSelect+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		bk, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, bk)
	}
	return out, rows.Err()
}

// UpdateStatus transitions a booking to a new status inside a
// transaction. The current status is read with FOR UPDATE and validated
// against the transition table; an illegal move returns
// ErrInvalidTransition and writes nothing.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, to string) (model.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var current string
	if err := tx.QueryRowContext(ctx,
		"SELECT status FROM bookings WHERE id=? FOR UPDATE", id).Scan(&current); err != nil {
		return model.Booking{}, err
	}
	if !model.CanTransitionBooking(current, to) {
		return model.Booking{}, ErrInvalidTransition
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=?", to, id); err != nil {
		return model.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	return r.GetByID(ctx, id)
}

// SetSlipRef stores the uploaded payment-slip reference. The status is
// left untouched; an admin confirms payment separately.
func (r *BookingRepo) SetSlipRef(ctx context.Context, id uint64, ref string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE bookings SET payment_slip_ref=? WHERE id=?", ref, id)
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

// AssignCrew sets the drone and pilot for a paid booking and moves it to
// assigned in one transaction. Both resources must currently be
// available; they are flipped to working together with the booking row.
func (r *BookingRepo) AssignCrew(ctx context.Context, id, droneID, pilotID uint64) (model.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var current string
	if err := tx.QueryRowContext(ctx,
		"SELECT status FROM bookings WHERE id=? FOR UPDATE", id).Scan(&current); err != nil {
		return model.Booking{}, err
	}
	if !model.CanTransitionBooking(current, model.BookingAssigned) {
		return model.Booking{}, ErrInvalidTransition
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE drones SET status=? WHERE id=? AND status=?",
		model.FleetWorking, droneID, model.FleetAvailable)
	if err != nil {
		return model.Booking{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Booking{}, ErrConflict
	}
	res, err = tx.ExecContext(ctx,
		"UPDATE pilots SET status=? WHERE id=? AND status=?",
		model.FleetWorking, pilotID, model.FleetAvailable)
	if err != nil {
		return model.Booking{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Booking{}, ErrConflict
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status=?, drone_id=?, pilot_id=? WHERE id=?",
		model.BookingAssigned, droneID, pilotID, id); err != nil {
		return model.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	return r.GetByID(ctx, id)
}
