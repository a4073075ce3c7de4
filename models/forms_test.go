package models

import (
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-admin/client"
	"github.com/rpupo63/portfolio-admin/errs"
)

func decodeJSONBody(t *testing.T, body *client.Body) map[string]any {
	t.Helper()
	require.Equal(t, "application/json", body.ContentType)

	data, err := io.ReadAll(body.Reader)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestProjectFormSplitsTechnologies(t *testing.T) {
	form := ProjectForm{Title: "Site", Technologies: "Go, React,  PostgreSQL"}
	require.NoError(t, form.Validate())

	body, err := form.Encode()
	require.NoError(t, err)

	payload := decodeJSONBody(t, body)
	assert.Equal(t, []any{"Go", "React", "PostgreSQL"}, payload["technologies"])
}

func TestProjectFormRequiresTitle(t *testing.T) {
	err := ProjectForm{Title: "   "}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrMissingRequiredField)
	assert.True(t, errs.IsLocalValidation(err))
}

func TestProjectFormWithImageIsMultipart(t *testing.T) {
	path := writeTempFile(t, "cover.png", []byte("png-bytes"))

	body, err := ProjectForm{Title: "Site", Technologies: "Go", ImagePath: path}.Encode()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(body.ContentType, "multipart/form-data"))
}

func TestSkillFormRejectsUnknownCategory(t *testing.T) {
	err := SkillForm{Name: "Go", Category: "quantum"}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidField)
}

func TestSkillFormClampsProficiencyOnEncode(t *testing.T) {
	body, err := SkillForm{Name: "Go", Category: SkillBackend, Proficiency: 140}.Encode()
	require.NoError(t, err)

	payload := decodeJSONBody(t, body)
	assert.Equal(t, float64(100), payload["proficiency"])
}

func TestExperienceFormCurrentNullsEndDate(t *testing.T) {
	form := ExperienceForm{
		Title:     "Engineer",
		Company:   "Initech",
		StartDate: "2023-01-01",
		EndDate:   "2024-06-30",
		Current:   true,
	}
	require.NoError(t, form.Validate())

	body, err := form.Encode()
	require.NoError(t, err)

	payload := decodeJSONBody(t, body)
	assert.Nil(t, payload["end_date"])
	assert.Equal(t, true, payload["current"])
}

func TestExperienceFormKeepsEndDateWhenNotCurrent(t *testing.T) {
	form := ExperienceForm{
		Title:     "Engineer",
		Company:   "Initech",
		StartDate: "2023-01-01",
		EndDate:   "2024-06-30",
		Current:   false,
	}

	body, err := form.Encode()
	require.NoError(t, err)

	payload := decodeJSONBody(t, body)
	assert.Equal(t, "2024-06-30", payload["end_date"])
}

func TestTestimonialFormRatingBounds(t *testing.T) {
	base := TestimonialForm{Name: "Ada", Content: "Great work"}

	for _, rating := range []int{1, 3, 5} {
		form := base
		form.Rating = rating
		assert.NoError(t, form.Validate(), "rating %d", rating)
	}
	for _, rating := range []int{0, 6, -1} {
		form := base
		form.Rating = rating
		assert.Error(t, form.Validate(), "rating %d", rating)
	}
}

func TestContactFormValidation(t *testing.T) {
	valid := ContactForm{Name: "Ada", Email: "ada@example.com", Message: "Hello"}
	assert.NoError(t, valid.Validate())

	noEmail := valid
	noEmail.Email = "not-an-email"
	assert.ErrorIs(t, noEmail.Validate(), errs.ErrInvalidField)

	noMessage := valid
	noMessage.Message = " "
	assert.ErrorIs(t, noMessage.Validate(), errs.ErrMissingRequiredField)
}
