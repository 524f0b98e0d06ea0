// Package models defines core data structures for parsed resumes and student profiles.
package models

// Fields holds the values extracted from a resume document. A zero value
// (empty string or nil slice) means the field was not found; downstream
// consumers do not distinguish empty from absent.
type Fields struct {
	Name           string   `json:"name,omitempty"`
	Email          string   `json:"email,omitempty"`
	MobileNumber   string   `json:"mobile_number,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Projects       []string `json:"projects,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
}

// Empty reports whether no field holds a value. The parsing pipeline uses
// this to decide whether the structured-extraction fallback is worth calling.
func (f *Fields) Empty() bool {
	return f.Name == "" && f.Email == "" && f.MobileNumber == "" &&
		len(f.Skills) == 0 && len(f.Projects) == 0 && len(f.Certifications) == 0
}

// HasHeadline reports whether any of the headline fields (email, phone,
// skills, certifications, projects) was found. Callers use this to tell a
// useful parse from a resume that uploaded fine but yielded nothing.
func (f *Fields) HasHeadline() bool {
	return f.Email != "" || f.MobileNumber != "" ||
		len(f.Skills) > 0 || len(f.Certifications) > 0 || len(f.Projects) > 0
}

// FillFrom copies values from other into fields that are still empty.
// Values already present are never overwritten, so heuristic results keep
// precedence over fallback results.
func (f *Fields) FillFrom(other *Fields) {
	if other == nil {
		return
	}
	if f.Name == "" {
		f.Name = other.Name
	}
	if f.Email == "" {
		f.Email = other.Email
	}
	if f.MobileNumber == "" {
		f.MobileNumber = other.MobileNumber
	}
	if len(f.Skills) == 0 {
		f.Skills = other.Skills
	}
	if len(f.Projects) == 0 {
		f.Projects = other.Projects
	}
	if len(f.Certifications) == 0 {
		f.Certifications = other.Certifications
	}
}
