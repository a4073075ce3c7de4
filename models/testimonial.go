package models

import (
	"strings"
	"time"

	"github.com/rpupo63/portfolio-admin/client"
	"github.com/rpupo63/portfolio-admin/errs"
)

// Testimonial represents a client or colleague quote. Only approved
// testimonials appear on the public site.
type Testimonial struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position,omitempty"`
	Company   string    `json:"company,omitempty"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	Featured  bool      `json:"featured"`
	Approved  bool      `json:"approved"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

func (t Testimonial) Key() int { return t.ID }

// TestimonialForm carries admin-entered testimonial fields.
type TestimonialForm struct {
	Name     string
	Position string
	Company  string
	Content  string
	Rating   int
	Featured bool
	Approved bool
	Order    int
}

func (f TestimonialForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return errs.NewMissingRequiredFieldError("name")
	}
	if strings.TrimSpace(f.Content) == "" {
		return errs.NewMissingRequiredFieldError("content")
	}
	if f.Rating < 1 || f.Rating > 5 {
		return errs.NewInvalidFieldError("rating", "must be between 1 and 5")
	}
	return nil
}

func (f TestimonialForm) Encode() (*client.Body, error) {
	return client.JSONBody(map[string]any{
		"name":     f.Name,
		"position": f.Position,
		"company":  f.Company,
		"content":  f.Content,
		"rating":   f.Rating,
		"featured": f.Featured,
		"approved": f.Approved,
		"order":    f.Order,
	})
}
