package leads

import "time"

// Lead is a contact form submission
type Lead struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"not null;index" json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Message      string    `json:"message,omitempty"`
	InterestedIn string    `gorm:"column:interested_in" json:"interested_in,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
