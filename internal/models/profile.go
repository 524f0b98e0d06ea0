package models

// Profile is a student profile as a nullable field map. A nil value means the
// field exists in the schema but holds no data; a missing key means the field
// was never part of the mapping at all. Profiles marshal to JSON with
// explicit nulls, matching what the dashboard expects.
type Profile map[string]*string

// CanonicalKeys is the fixed set of profile fields a mapped resume produces.
// Every profile emitted by the mapper contains exactly these keys.
var CanonicalKeys = []string{
	"first_name",
	"last_name",
	"email",
	"phone",
	"department",
	"tenth_percentage",
	"tenth_year",
	"tenth_board",
	"twelfth_percentage",
	"twelfth_year",
	"twelfth_board",
	"diploma_percentage",
	"diploma_year",
	"diploma_branch",
	"engg_passing_year",
	"programming_languages",
	"academic_projects",
	"certificates",
	"hobbies",
}

// String returns a pointer to s. Profile values are nullable, so literals
// need an address.
func String(s string) *string {
	return &s
}

// Clone returns a copy of the profile. Values are copied, not shared.
func (p Profile) Clone() Profile {
	out := make(Profile, len(p))
	for k, v := range p {
		if v == nil {
			out[k] = nil
			continue
		}
		s := *v
		out[k] = &s
	}
	return out
}

// Merge reconciles a freshly mapped profile against a stored one. The
// precedence rule, applied per key: a mapped value is adopted only when it is
// non-nil and non-empty AND the stored value is absent, nil, or empty.
// Stored data always wins otherwise, and keys not present in mapped are left
// exactly as stored. Merge never mutates its arguments; persistence of the
// result is the caller's concern.
func Merge(stored, mapped Profile) Profile {
	out := stored.Clone()
	for k, v := range mapped {
		if v == nil || *v == "" {
			continue
		}
		if cur, ok := out[k]; ok && cur != nil && *cur != "" {
			continue
		}
		s := *v
		out[k] = &s
	}
	return out
}
