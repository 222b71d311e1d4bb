package booking

import (
	"errors"
	"strings"
	"unicode/utf8"

	"agencysite/internal/content"
)

const (
	maxNameLength    = 100
	maxEmailLength   = 255
	maxMessageLength = 5000
)

var (
	ErrMissingFields  = errors.New("missing required fields")
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrFieldTooLong   = errors.New("field length exceeded")
	ErrNotConfigured  = errors.New("email service not configured")
	ErrDeliveryFailed = errors.New("failed to send email")
)

type Request struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Company     string `json:"company,omitempty"`
	ProjectType string `json:"projectType"`
	Budget      string `json:"budget,omitempty"`
	Message     string `json:"message"`
}

var projectTypeLabels = map[string]string{
	"website":    "Website Development",
	"webapp":     "Web Application",
	"mobile":     "Mobile App",
	"ecommerce":  "E-Commerce",
	"consulting": "Consulting",
	"other":      "Other",
}

// ProjectTypeLabel returns the display name for a project type key, or the
// key itself when it is not a known type.
func ProjectTypeLabel(projectType string) string {
	if label, ok := projectTypeLabels[projectType]; ok {
		return label
	}
	return projectType
}

func (r *Request) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Company = strings.TrimSpace(r.Company)
	r.ProjectType = strings.TrimSpace(r.ProjectType)
	r.Budget = strings.TrimSpace(r.Budget)
}

// Validate checks required fields, the email format and field lengths, in
// that order.
func (r Request) Validate() error {
	if r.Name == "" || r.Email == "" || r.ProjectType == "" || strings.TrimSpace(r.Message) == "" {
		return ErrMissingFields
	}
	if !content.ValidEmail(r.Email) {
		return ErrInvalidEmail
	}
	if utf8.RuneCountInString(r.Name) > maxNameLength ||
		utf8.RuneCountInString(r.Email) > maxEmailLength ||
		utf8.RuneCountInString(r.Message) > maxMessageLength {
		return ErrFieldTooLong
	}
	return nil
}
