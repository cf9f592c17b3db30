// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into LINE notifications.
package queue

// BookingStatusEvent is published whenever an admin moves a booking to a
// new status. It carries everything the notifier needs so the consumer
// never queries the primary database.
type BookingStatusEvent struct {
	BookingID    uint64  `json:"booking_id"`
	LineUserID   string  `json:"line_user_id,omitempty"`
	CustomerName string  `json:"customer_name"`
	CropName     string  `json:"crop_name"`
	SprayName    string  `json:"spray_name"`
	AreaRai      float64 `json:"area_rai"`
	TotalPrice   float64 `json:"total_price"`
	Status       string  `json:"status"`
	ChangedAt    string  `json:"changed_at"`
}
