package model

import "time"

// User is a document in the users collection. The document id is the uid.
type User struct {
	UID          string    `json:"uid" firestore:"uid"`
	Nama         string    `json:"nama" firestore:"nama"`
	Email        string    `json:"email" firestore:"email"`
	PasswordHash string    `json:"-" firestore:"password_hash"`
	Role         Role      `json:"role" firestore:"role"`
	Lembaga      string    `json:"lembaga" firestore:"lembaga"`
	CreatedAt    time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updated_at,omitempty"`
}

// PendingUser is a registration waiting for admin approval.
type PendingUser struct {
	ID            string    `json:"id" firestore:"-"`
	Nama          string    `json:"nama" firestore:"nama"`
	Email         string    `json:"email" firestore:"email"`
	PasswordHash  string    `json:"-" firestore:"password_hash"`
	Lembaga       string    `json:"lembaga" firestore:"lembaga"`
	Status        string    `json:"status" firestore:"status"`
	RequestedRole Role      `json:"requested_role" firestore:"requested_role"`
	CreatedAt     time.Time `json:"created_at" firestore:"created_at"`
}

// PendingStatus is the only status a pending_users document carries.
const PendingStatus = "pending"

// UserListFilter narrows the admin user listing.
type UserListFilter struct {
	Role    Role
	Lembaga string
}

// RegisterRequest is the payload for self-registration.
type RegisterRequest struct {
	Nama          string `json:"nama" binding:"required,min=2,max=100"`
	Email         string `json:"email" binding:"required,email,max=255"`
	Password      string `json:"password" binding:"required,min=6,max=128"`
	Lembaga       string `json:"lembaga" binding:"required,max=150"`
	RequestedRole Role   `json:"requested_role" binding:"omitempty,oneof=user admin"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// AcceptPendingRequest optionally overrides the requested role on approval.
type AcceptPendingRequest struct {
	Role Role `json:"role" binding:"omitempty,oneof=user admin"`
}

// UpdateRoleRequest is the payload for changing a user's role.
type UpdateRoleRequest struct {
	Role Role `json:"role" binding:"required,oneof=user admin super_admin"`
}

// UpdateProfileRequest edits the caller's own account. Empty fields are left unchanged.
type UpdateProfileRequest struct {
	Nama     string `json:"nama" binding:"omitempty,min=2,max=100"`
	Lembaga  string `json:"lembaga" binding:"omitempty,max=150"`
	Password string `json:"password" binding:"omitempty,min=6,max=128"`
}
