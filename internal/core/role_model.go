package core

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownRole = errors.New("unknown role")

// Role selects which dashboard areas a session may view.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleAccountant Role = "accountant"
	RoleDoctor     Role = "doctor"
)

// DefaultRole is the role a new session starts with.
const DefaultRole = RoleAdmin

// Roles lists the selectable roles in display order.
var Roles = []Role{RoleAdmin, RoleAccountant, RoleDoctor}

// Label returns the role selector caption.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrator (Full)"
	case RoleAccountant:
		return "Accountant (Finance Only)"
	case RoleDoctor:
		return "Doctor (Clinical Only)"
	}
	return string(r)
}

// ParseRole accepts a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownRole, s)
}

// Area is one of the two mutually gated feature areas.
type Area string

const (
	AreaFinancial Area = "financial"
	AreaClinical  Area = "clinical"
)

// CanAccess reports whether the role may view area.
// This is a display gate only: any caller can select any role, so it is not an
// authorization boundary.
func (r Role) CanAccess(area Area) bool {
	switch area {
	case AreaFinancial:
		return r != RoleDoctor
	case AreaClinical:
		return r != RoleAccountant
	}
	return false
}

// AccessDeniedMessage is the static text shown in place of a gated area.
func AccessDeniedMessage(area Area) string {
	switch area {
	case AreaFinancial:
		return "Access Denied: Financial Data Restricted"
	case AreaClinical:
		return "Access Denied: Clinical Data Restricted"
	}
	return "Access Denied"
}
