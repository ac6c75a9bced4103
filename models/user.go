package models

// User is the session-scoped profile stored under the "legalUser" key.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage,omitempty"`
	PasswordHash string `json:"-"`
	Token        string `json:"token,omitempty"`
	// TokenHash is what the session keeps at rest; the raw token is only
	// handed out once at sign-in.
	TokenHash string `json:"tokenHash,omitempty"`
}

// UserRegistration is the signup payload.
type UserRegistration struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// UserCredentials is the login payload.
type UserCredentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
