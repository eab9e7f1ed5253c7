package models

// Session is the client's record of an authenticated identity. The token is
// opaque; the backend owns validation.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}
