package domain

// Session is the transient snapshot of the currently logged-in identity.
// It is a UI convenience cache, not an authentication token: at most one
// session exists at a time, it is created at login, destroyed at logout,
// and lost when its store expires.
type Session struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}
