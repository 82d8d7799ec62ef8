package models

import "time"

// Company represents a company that users can belong to
type Company struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	ZipCode   *int      `json:"zipCode"`
	Users     []User    `json:"users,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
