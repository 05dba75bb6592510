package model

import "time"

// Staff roles stored in users.role and carried in the JWT "role"
// claim.  Route groups are gated on these values.
const (
	RoleAdmin        = "ADMIN"
	RoleReceptionist = "RECEPTIONIST"
	RoleCashier      = "CASHIER"
	RoleHousekeeping = "HOUSEKEEPING"
)

// User represents a staff account in the `users` table.  Mutating
// operations record the acting user's ID in audit columns such as
// reservations.created_by and check_ins.performed_by.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – one of the Role* constants.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only
// the SHA-256 hash of the issued token is stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
