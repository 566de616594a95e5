package model

// Profile is the user blob persisted alongside the session token.
type Profile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	IsStaff   bool   `json:"is_staff"`
}

// DisplayName falls back to a generic label when no profile is loaded.
func (p *Profile) DisplayName() string {
	if p == nil || p.Username == "" {
		return "user"
	}
	return p.Username
}
