package domain

// RoleAdmin is the only role granted access to the back-office. Other
// roles may exist server-side but are never modeled here.
const RoleAdmin = "admin"

// User is the authenticated principal as cached locally. The server copy
// supersedes the cached copy on every successful re-validation.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the user may access protected routes.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
