package models

// User represents a registered account in the marketplace.
// Credential material never leaves the persistence boundary:
// PasswordHash is excluded from every JSON projection.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"userId"`

	// Email is the unique login identifier.
	// Exposed only to the account owner; public projections blank it.
	Email string `json:"email,omitempty"`

	// FirstName is the user's given name, shown on listings they sell.
	FirstName string `json:"firstName"`

	// LastName is the user's family name, shown on listings they sell.
	LastName string `json:"lastName"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized.
	PasswordHash string `json:"-"`

	// ImageRef is the filename of the user's profile image inside the
	// blob store, or empty when no image has been uploaded.
	ImageRef string `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Public returns a projection of the user safe to show to anyone:
// the email is stripped unless the viewer is the account owner.
func (u User) Public(viewerID int64) User {
	if viewerID != u.UserID {
		u.Email = ""
	}
	u.PasswordHash = ""
	return u
}

// UserPatch describes a partial profile update. Nil fields are left
// untouched. Changing the password additionally requires CurrentPassword
// as proof of identity.
type UserPatch struct {
	Email           *string `json:"email"`
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	Password        *string `json:"password"`
	CurrentPassword *string `json:"currentPassword"`
}

// Empty reports whether the patch would change nothing.
func (p UserPatch) Empty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil && p.Password == nil
}

// RegisterRequest is the payload accepted by the registration endpoint.
type RegisterRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// LoginRequest is the payload accepted by the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is returned to a successfully authenticated caller.
type LoginResult struct {
	UserID int64  `json:"userId"`
	Token  string `json:"token"`
}
