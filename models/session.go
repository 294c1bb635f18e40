package models

import "time"

// Session is one live authentication session. The token is the primary key
// and the user id carries a unique constraint, so issuing a new token for a
// user atomically replaces any session they already had: at most one live
// token per user is a schema-enforced invariant, not a convention.
type Session struct {
	// Token is the opaque bearer credential handed to the client.
	Token string `json:"token"`

	// UserID is the account the token authenticates as.
	UserID int64 `json:"userId"`

	// CreatedAt records when the token was issued.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}
