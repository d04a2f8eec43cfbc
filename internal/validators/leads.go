package validators

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/vrtu/musharaka/internal/leads"
)

const (
	MaxNameLength    = 200
	MaxPhoneLength   = 40
	MaxMessageLength = 5000
)

// CheckLead validates a contact form submission
func CheckLead(dto leads.CreateLeadDTO) error {
	var v violations

	name := strings.TrimSpace(dto.Name)
	switch {
	case name == "":
		v.add(&FieldViolation{Field: "name", Message: "required"})
	case utf8.RuneCountInString(name) > MaxNameLength:
		v.add(&FieldViolation{Field: "name", Message: fmt.Sprintf("must be at most %d characters", MaxNameLength)})
	}

	email := strings.TrimSpace(dto.Email)
	if email == "" {
		v.add(&FieldViolation{Field: "email", Message: "required"})
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		v.add(&FieldViolation{Field: "email", Message: "invalid email address"})
	}

	if utf8.RuneCountInString(dto.Phone) > MaxPhoneLength {
		v.add(&FieldViolation{Field: "phone", Message: fmt.Sprintf("must be at most %d characters", MaxPhoneLength)})
	}
	if utf8.RuneCountInString(dto.Message) > MaxMessageLength {
		v.add(&FieldViolation{Field: "message", Message: fmt.Sprintf("must be at most %d characters", MaxMessageLength)})
	}

	return v.err()
}
