package model

import "time"

// Booking statuses. A booking is never hard-deleted; cancellation is a
// status transition like any other.
const (
	BookingPendingPayment = "pending_payment"
	BookingPaid           = "paid"
	BookingAssigned       = "assigned"
	BookingInProgress     = "in_progress"
	BookingCompleted      = "completed"
	BookingCancelled      = "cancelled"
)

// bookingTransitions lists the allowed next statuses for each booking
// status. Terminal statuses map to an empty set.
var bookingTransitions = map[string][]string{
	BookingPendingPayment: {BookingPaid, BookingCancelled},
	BookingPaid:           {BookingAssigned, BookingCancelled},
	BookingAssigned:       {BookingInProgress, BookingCancelled},
	BookingInProgress:     {BookingCompleted, BookingCancelled},
	BookingCompleted:      {},
	BookingCancelled:      {},
}

// ValidBookingStatus reports whether s is one of the known booking statuses.
func ValidBookingStatus(s string) bool {
	_, ok := bookingTransitions[s]
	return ok
}

// CanTransitionBooking reports whether a booking may move from one status
// to another. Unknown statuses never transition.
func CanTransitionBooking(from, to string) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Booking records a drone spraying order placed by a farmer, either via the
// LIFF booking form or on their behalf by an admin.
//
// Fields:
//  ID             – primary key identifier.
//  UserID         – account that placed the booking (nullable; LIFF guests
//                   book with only a LINE user id).
//  LineUserID     – LINE user id of the customer, used by the chatbot to
//                   look up status/history (nullable).
//  CustomerName   – contact name entered on the form.
//  CustomerPhone  – contact phone number.
//  AreaRai        – field area to spray, in rai.
//  CropTypeID     – selected crop pricing row.
//  SprayTypeID    – selected spray pricing row.
//  TotalPrice     – area_rai * (crop rate + spray rate), computed server side.
//  Deposit        – 30% of the total.
//  Status         – one of the Booking* constants above.
//  ScheduledAt    – requested spray date/time (nullable until confirmed).
//  DroneID/PilotID– assigned fleet resources (nullable until assignment).
//  PaymentSlipRef – storage reference of the uploaded payment slip (nullable).
type Booking struct {
	ID             uint64     `json:"id"`
	UserID         *uint64    `json:"user_id,omitempty"`
	LineUserID     *string    `json:"line_user_id,omitempty"`
	CustomerName   string     `json:"customer_name"`
	CustomerPhone  string     `json:"customer_phone"`
	AreaRai        float64    `json:"area_rai"`
	CropTypeID     uint64     `json:"crop_type_id"`
	SprayTypeID    uint64     `json:"spray_type_id"`
	CropName       string     `json:"crop_name"`
	SprayName      string     `json:"spray_name"`
	TotalPrice     float64    `json:"total_price"`
	Deposit        float64    `json:"deposit"`
	Status         string     `json:"status"`
	ScheduledAt    *time.Time `json:"scheduled_at,omitempty"`
	DroneID        *uint64    `json:"drone_id,omitempty"`
	PilotID        *uint64    `json:"pilot_id,omitempty"`
	PaymentSlipRef *string    `json:"payment_slip_ref,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
