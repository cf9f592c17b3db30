package model

import "time"

// Fleet statuses shared by drones, pilots and ground equipment.
const (
	FleetAvailable   = "available"
	FleetWorking     = "working"
	FleetMaintenance = "maintenance"
	FleetRepair      = "repair"
)

// ValidFleetStatus reports whether s is a known fleet status.
func ValidFleetStatus(s string) bool {
	switch s {
	case FleetAvailable, FleetWorking, FleetMaintenance, FleetRepair:
		return true
	}
	return false
}

// Drone is a spraying drone in the fleet inventory.
type Drone struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	Model      string    `json:"model"`
	TankLiters float64   `json:"tank_liters"`
	Status     string    `json:"status"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Pilot is a licensed drone operator that can be assigned to bookings.
type Pilot struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	LicenseNo string    `json:"license_no"`
	Status    string    `json:"status"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Equipment is a rentable ground item (pumps, tanks, sprayers) listed on
// the rental page the chatbot deep-links into.
type Equipment struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	DailyRate   float64   `json:"daily_rate"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
