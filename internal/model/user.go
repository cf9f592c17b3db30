package model

import "time"

// Roles stored in the users.role column and in the JWT "role" claim.
const (
	RoleAdmin    = "ADMIN"
	RoleFarmer   = "FARMER"
	RoleProvider = "PROVIDER"
)

// User represents an application user record as stored in the `users`
// table. Farmers book spraying and post jobs, providers bid on jobs, and
// admins manage the fleet, pricing and orders.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – one of the Role* constants above.
//  LineUserID   – LINE user id linked to this account (nullable). Links the
//                 chatbot history/status commands to web bookings.
//  IsActive     – whether the account is active.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	LineUserID   *string   `json:"line_user_id,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RefreshToken models an entry in the `refresh_tokens` table. Only the
// SHA-256 hash of the raw token is stored.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
