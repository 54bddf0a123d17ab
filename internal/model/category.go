package model

import "time"

// Category represents a spending category owned by a single user.
// Names are unique per user; transactions hold a weak reference that is
// cleared when the category is deleted.
type Category struct {
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	ID        int64     `json:"id"`
}
