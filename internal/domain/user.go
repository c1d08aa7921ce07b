package domain

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleAmbassador Role = "ambassador"
	RolePartner    Role = "partner"
)

type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	Name              string    `json:"name"`
	Role              Role      `json:"role"`
	CommissionLevelID *string   `json:"commission_level_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Actor identifies who performs a workflow action, as recorded in the log.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}
