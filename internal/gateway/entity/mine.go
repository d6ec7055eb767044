package entity

import "strings"

// MineID identifies one mine site. Opaque to everything except the
// store that keys records by it.
type MineID string

func NormalizeMineID(raw string) MineID {
	return MineID(strings.TrimSpace(raw))
}

func (id MineID) String() string {
	return strings.TrimSpace(string(id))
}

func (id MineID) IsZero() bool {
	return id.String() == ""
}
