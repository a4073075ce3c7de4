package models

import (
	"strings"
	"time"

	"github.com/rpupo63/portfolio-admin/client"
	"github.com/rpupo63/portfolio-admin/errs"
)

// Project represents a portfolio project with metadata
type Project struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies,omitempty"`
	GithubLink   string    `json:"github_link,omitempty"`
	LiveDemoLink string    `json:"live_demo_link,omitempty"`
	Featured     bool      `json:"featured"`
	Order        int       `json:"order"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p Project) Key() int { return p.ID }

// ProjectForm carries admin-entered project fields. Technologies is the raw
// comma-separated input; it is split and cleaned on encode. ImagePath points
// at a local image to attach, empty to send plain JSON.
type ProjectForm struct {
	Title        string
	Description  string
	Technologies string
	GithubLink   string
	LiveDemoLink string
	Featured     bool
	Order        int
	ImagePath    string
}

func (f ProjectForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	return nil
}

func (f ProjectForm) Encode() (*client.Body, error) {
	technologies := SplitList(f.Technologies)

	if f.ImagePath == "" {
		return client.JSONBody(map[string]any{
			"title":          f.Title,
			"description":    f.Description,
			"technologies":   technologies,
			"github_link":    f.GithubLink,
			"live_demo_link": f.LiveDemoLink,
			"featured":       f.Featured,
			"order":          f.Order,
		})
	}

	return client.NewMultipart().
		WriteField("title", f.Title).
		WriteField("description", f.Description).
		WriteJSONField("technologies", technologies).
		WriteField("github_link", f.GithubLink).
		WriteField("live_demo_link", f.LiveDemoLink).
		WriteBoolField("featured", f.Featured).
		WriteIntField("order", f.Order).
		WriteFile("image", f.ImagePath).
		Body()
}
