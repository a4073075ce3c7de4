package models

import (
	"strings"

	"github.com/rpupo63/portfolio-admin/client"
	"github.com/rpupo63/portfolio-admin/errs"
)

// Experience represents one position. Dates travel as YYYY-MM-DD strings;
// EndDate is null for ongoing roles.
type Experience struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Company      string  `json:"company"`
	Location     string  `json:"location,omitempty"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date"`
	Current      bool    `json:"current"`
	Description  string  `json:"description"`
	Technologies string  `json:"technologies,omitempty"`
	Order        int     `json:"order"`
}

func (e Experience) Key() int { return e.ID }

// ExperienceForm carries admin-entered experience fields. When Current is
// set, EndDate is forced to null on submit regardless of what the field
// holds, so an ongoing role can never carry a stale end date.
type ExperienceForm struct {
	Title        string
	Company      string
	Location     string
	StartDate    string
	EndDate      string
	Current      bool
	Description  string
	Technologies string
	Order        int
}

func (f ExperienceForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	if strings.TrimSpace(f.Company) == "" {
		return errs.NewMissingRequiredFieldError("company")
	}
	if strings.TrimSpace(f.StartDate) == "" {
		return errs.NewMissingRequiredFieldError("start_date")
	}
	return nil
}

func (f ExperienceForm) Encode() (*client.Body, error) {
	var endDate any
	if !f.Current && strings.TrimSpace(f.EndDate) != "" {
		endDate = f.EndDate
	}

	return client.JSONBody(map[string]any{
		"title":        f.Title,
		"company":      f.Company,
		"location":     f.Location,
		"start_date":   f.StartDate,
		"end_date":     endDate,
		"current":      f.Current,
		"description":  f.Description,
		"technologies": f.Technologies,
		"order":        f.Order,
	})
}
