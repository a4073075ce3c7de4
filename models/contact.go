package models

import (
	"strings"
	"time"

	"github.com/rpupo63/portfolio-admin/client"
	"github.com/rpupo63/portfolio-admin/errs"
)

// ContactMessage is produced by the public contact form and consumed only by
// the admin, who marks messages read and deletes them.
type ContactMessage struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	Read        bool      `json:"read"`
	Responded   bool      `json:"responded"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func (c ContactMessage) Key() int { return c.ID }

// ContactForm is the public contact-form payload. Its POST is the one
// unauthenticated write in the API.
type ContactForm struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func (f ContactForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return errs.NewMissingRequiredFieldError("name")
	}
	if !strings.Contains(f.Email, "@") {
		return errs.NewInvalidFieldError("email", "must be a valid email address")
	}
	if strings.TrimSpace(f.Message) == "" {
		return errs.NewMissingRequiredFieldError("message")
	}
	return nil
}

func (f ContactForm) Encode() (*client.Body, error) {
	return client.JSONBody(map[string]any{
		"name":    f.Name,
		"email":   f.Email,
		"subject": f.Subject,
		"message": f.Message,
	})
}
