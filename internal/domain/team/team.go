package team

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role determines what a user may do. Permissions are always derived from
// the role and never stored or set independently.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// RoleFromString converts a string to a Role
func RoleFromString(v string) (Role, bool) {
	r := Role(strings.ToLower(v))
	return r, r.Valid()
}

// Description returns the user-facing summary of what the role allows
func (r Role) Description() string {
	switch r {
	case RoleAdmin:
		return "Full access to manage the team and all features"
	case RoleEditor:
		return "Create and edit mapping projects and data"
	default:
		return "View and analyze mapping data and reports"
	}
}

// Permissions are the concrete capability flags derived from a role
type Permissions struct {
	CanEdit        bool `json:"canEdit"`
	CanDelete      bool `json:"canDelete"`
	CanInvite      bool `json:"canInvite"`
	CanManageUsers bool `json:"canManageUsers"`
}

// PermissionsForRole derives the permission flags for a role
func PermissionsForRole(r Role) Permissions {
	return Permissions{
		CanEdit:        r != RoleViewer,
		CanDelete:      r == RoleAdmin,
		CanInvite:      r == RoleAdmin,
		CanManageUsers: r == RoleAdmin,
	}
}

// User is a signed-in user profile
type User struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Avatar      string      `json:"avatar,omitempty"`
	Role        Role        `json:"role"`
	JoinedAt    time.Time   `json:"joinedAt"`
	LastActive  time.Time   `json:"lastActive"`
	Permissions Permissions `json:"permissions"`
}

// MemberStatus is the lifecycle state of a roster entry
type MemberStatus string

const (
	MemberActive    MemberStatus = "active"
	MemberPending   MemberStatus = "pending"
	MemberSuspended MemberStatus = "suspended"
)

// Member is a roster entry: a user plus invitation bookkeeping
type Member struct {
	User
	InvitedBy string       `json:"invitedBy,omitempty"`
	Status    MemberStatus `json:"status"`
}

// NewUser creates a user with the given role and derived permissions
func NewUser(email string, role Role) *User {
	now := time.Now()
	return &User{
		ID:          uuid.New().String(),
		Email:       email,
		Name:        DisplayNameFromEmail(email),
		Role:        role,
		JoinedAt:    now,
		LastActive:  now,
		Permissions: PermissionsForRole(role),
	}
}

// NewMember creates a pending roster entry for an invited address
func NewMember(email string, role Role, invitedBy string) *Member {
	u := NewUser(email, role)
	return &Member{
		User:      *u,
		InvitedBy: invitedBy,
		Status:    MemberPending,
	}
}

// SetRole changes the role and re-derives the permission flags
func (u *User) SetRole(role Role) error {
	if !role.Valid() {
		return fmt.Errorf("invalid role: %q", string(role))
	}
	u.Role = role
	u.Permissions = PermissionsForRole(role)
	return nil
}

// DisplayNameFromEmail turns the local part of an address into a readable name
func DisplayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	replacer := strings.NewReplacer(".", " ", "_", " ")
	return replacer.Replace(local)
}
