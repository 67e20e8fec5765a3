package models

// LoginResponse is the response body of a successful login.
type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`
}

// RefreshRequest is the body of the refresh and logout calls.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse is the response body of a successful token refresh.
type RefreshResponse struct {
	Access string `json:"access"`
}

// Session is the locally cached authentication state.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *User
}

// IsZero reports whether the session carries no access token.
func (s Session) IsZero() bool {
	return s.AccessToken == ""
}
