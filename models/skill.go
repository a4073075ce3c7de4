package models

import (
	"strings"

	"github.com/rpupo63/portfolio-admin/client"
	"github.com/rpupo63/portfolio-admin/errs"
)

// SkillCategory is the fixed category set the API accepts.
type SkillCategory string

const (
	SkillFrontend SkillCategory = "frontend"
	SkillBackend  SkillCategory = "backend"
	SkillDatabase SkillCategory = "database"
	SkillDevOps   SkillCategory = "devops"
	SkillOther    SkillCategory = "other"
)

func (c SkillCategory) Valid() bool {
	switch c {
	case SkillFrontend, SkillBackend, SkillDatabase, SkillDevOps, SkillOther:
		return true
	}
	return false
}

// Skill represents one skill entry with a 0-100 proficiency.
type Skill struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Category    SkillCategory `json:"category"`
	Proficiency int           `json:"proficiency"`
	Icon        string        `json:"icon,omitempty"`
	Order       int           `json:"order"`
}

func (s Skill) Key() int { return s.ID }

// SkillForm carries admin-entered skill fields. Proficiency is clamped to
// [0, 100] on encode the way the input control clamps it, not validated as a
// hard error.
type SkillForm struct {
	Name        string
	Category    SkillCategory
	Proficiency int
	Icon        string
	Order       int
}

func (f SkillForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return errs.NewMissingRequiredFieldError("name")
	}
	if !f.Category.Valid() {
		return errs.NewInvalidFieldError("category", "must be one of frontend, backend, database, devops, other")
	}
	return nil
}

func (f SkillForm) Encode() (*client.Body, error) {
	return client.JSONBody(map[string]any{
		"name":        f.Name,
		"category":    f.Category,
		"proficiency": ClampProficiency(f.Proficiency),
		"icon":        f.Icon,
		"order":       f.Order,
	})
}
