// Package mapper translates parsed resume fields into the canonical student
// profile schema consumed by the profile store.
package mapper

import (
	"strings"

	"github.com/campushire/parsume/internal/models"
)

// Defaults holds the institutional placeholder values applied to academic
// fields the parser cannot infer from a resume. They are configuration, not
// derived data, and are filled in regardless of input.
type Defaults struct {
	Department        string `yaml:"department"`
	TenthPercentage   string `yaml:"tenth_percentage"`
	TenthYear         string `yaml:"tenth_year"`
	TwelfthPercentage string `yaml:"twelfth_percentage"`
	TwelfthYear       string `yaml:"twelfth_year"`
	EnggPassingYear   string `yaml:"engg_passing_year"`
}

// Mapper maps parsed fields onto the canonical profile schema.
type Mapper struct {
	defaults Defaults
}

// New returns a mapper applying the given institutional defaults.
func New(defaults Defaults) *Mapper {
	return &Mapper{defaults: defaults}
}

// MapToProfile maps parsed resume fields to a profile. The result is total:
// every canonical key is present, nil where no source data exists. Skill,
// project, and certification lists are joined into comma-separated strings
// (an empty list joins to "", not nil, matching the free-text profile
// columns).
func (m *Mapper) MapToProfile(f *models.Fields) models.Profile {
	p := make(models.Profile, len(models.CanonicalKeys))
	for _, k := range models.CanonicalKeys {
		p[k] = nil
	}

	p["email"] = optional(f.Email)
	p["phone"] = optional(f.MobileNumber)
	p["programming_languages"] = models.String(strings.Join(f.Skills, ", "))
	p["academic_projects"] = models.String(strings.Join(f.Projects, ", "))
	p["certificates"] = models.String(strings.Join(f.Certifications, ", "))

	p["department"] = models.String(m.defaults.Department)
	p["tenth_percentage"] = models.String(m.defaults.TenthPercentage)
	p["tenth_year"] = models.String(m.defaults.TenthYear)
	p["twelfth_percentage"] = models.String(m.defaults.TwelfthPercentage)
	p["twelfth_year"] = models.String(m.defaults.TwelfthYear)
	p["engg_passing_year"] = models.String(m.defaults.EnggPassingYear)

	if f.Name != "" {
		parts := strings.Fields(f.Name)
		if len(parts) >= 2 {
			p["first_name"] = models.String(parts[0])
			p["last_name"] = models.String(strings.Join(parts[1:], " "))
		} else {
			p["first_name"] = models.String(f.Name)
		}
	}

	return p
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return models.String(s)
}
