package domain

import "time"

// Role is the audience a generated report is phrased for.
type Role string

const (
	RoleCommonUser Role = "common_user"
	RoleDoctor     Role = "doctor"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleCommonUser || r == RoleDoctor
}

// AudienceHint returns the phrasing instruction appended to every model call
// for this role. The underlying request is otherwise identical for both roles.
func (r Role) AudienceHint() string {
	if r == RoleDoctor {
		return "Address the response to a medical professional. Use precise clinical terminology and include differential considerations where relevant."
	}
	return "Explain the findings in plain language for a patient without medical training. Avoid jargon and clearly state when a doctor should be consulted."
}

// User models a registered account. Records are immutable after signup and
// there is no delete path.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`

	// Doctor-only profile fields, required at signup for RoleDoctor.
	LicenseNumber  string `json:"license_number,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Affiliation    string `json:"affiliation,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
