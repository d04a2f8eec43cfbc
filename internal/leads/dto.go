package leads

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateLeadDTO is the contact form payload
type CreateLeadDTO struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Message      string `json:"message"`
	InterestedIn string `json:"interested_in"`
}

// ToLead builds a new Lead stamped with a fresh ID and creation time
func (d CreateLeadDTO) ToLead(now time.Time) *Lead {
	return &Lead{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(d.Name),
		Email:        strings.TrimSpace(d.Email),
		Phone:        strings.TrimSpace(d.Phone),
		Message:      strings.TrimSpace(d.Message),
		InterestedIn: strings.TrimSpace(d.InterestedIn),
		CreatedAt:    now.UTC(),
	}
}
