package domain

import "time"

// User is the unified identity record shared by all three actor roles.
// At most one profile link is set, during out-of-scope onboarding; the role
// decides which one applies.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	ApplicantID *int64 `json:"applicant_id"`
	CenterID    *int64 `json:"center_id"`
	EmployeeID  *int64 `json:"employee_id"`
}
