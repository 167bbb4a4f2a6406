package models

// User is a marketplace account as returned by /auth/me and /users/*.
//
// Rating is the server-computed seller score; nil when the server did not
// send one.
type User struct {
	ID       ID       `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Bio      string   `json:"bio,omitempty"`
	Verified bool     `json:"verified"`
	Rating   *float64 `json:"rating,omitempty"`
}

// AuthResult is the body of a successful login or registration.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// ProfileUpdate is the PATCH /users/:id body.
type ProfileUpdate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
}

// PasswordChange is the PATCH /users/:id/password body.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
