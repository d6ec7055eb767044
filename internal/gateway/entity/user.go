package entity

import "strings"

// UserID identifies a logical user boundary in gateway services. The
// auth collaborator supplies it; internally it is an opaque normalized
// string (in practice a lowercased email).
type UserID string

func NormalizeUserID(raw string) UserID {
	return UserID(strings.ToLower(strings.TrimSpace(raw)))
}

func (id UserID) String() string {
	return strings.TrimSpace(string(id))
}

func (id UserID) IsZero() bool {
	return id.String() == ""
}
