package models

import "time"

type Settings struct {
	Timezone      string
	RemindEnabled bool
	WeekStart     string
}

// Profile holds a user's mission and vision statements
type Profile struct {
	UserID    string    `json:"user_id"`
	Mission   string    `json:"mission"`
	Vision    string    `json:"vision"`
	UpdatedAt time.Time `json:"updated_at"`
}
