package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Role is a closed permission tag. Authorization decisions are set-membership
// tests against a session's RoleSet, never raw string comparisons.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleStaff Role = "Staff"
	RoleUser  Role = "User"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole converts an upstream role tag into a Role. Tags are case-sensitive:
// the platform API already emits the canonical capitalized form.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleStaff, RoleUser:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// RoleSet is the set of roles held by one session.
type RoleSet []Role

// Has reports whether the set contains r.
func (rs RoleSet) Has(r Role) bool {
	for _, held := range rs {
		if held == r {
			return true
		}
	}
	return false
}

// ParseRoles converts upstream role tags into a RoleSet. Unrecognized tags are
// skipped and reported through the returned error so callers can log them;
// the RoleSet is usable either way.
func ParseRoles(tags []string) (RoleSet, error) {
	set := make(RoleSet, 0, len(tags))
	var unknown []string
	for _, tag := range tags {
		role, err := ParseRole(tag)
		if err != nil {
			unknown = append(unknown, tag)
			continue
		}
		if !set.Has(role) {
			set = append(set, role)
		}
	}
	if len(unknown) > 0 {
		return set, fmt.Errorf("%w: %s", ErrUnknownRole, strings.Join(unknown, ", "))
	}
	return set, nil
}

// Strings returns the raw tags, for serialization.
func (rs RoleSet) Strings() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}
