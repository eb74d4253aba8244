package domain

// LoginRequest carries the credentials posted to /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUser is the public view of a logged-in user.
type AuthUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResponse is returned by /login and /refresh.
type LoginResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	ExpiresIn    int      `json:"expiresIn"`
	User         AuthUser `json:"user"`
}

// RefreshRequest carries the refresh token posted to /refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}
