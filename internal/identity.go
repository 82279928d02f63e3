package internal

// DefaultUserID is used when no identity is configured; the backend has no
// authentication.
const DefaultUserID = "user123"

// Identity supplies the user id sent with every backend request
type Identity interface {
	UserID() string
}

// StaticIdentity is a fixed user id
type StaticIdentity string

// UserID implements Identity
func (s StaticIdentity) UserID() string {
	if s == "" {
		return DefaultUserID
	}
	return string(s)
}
