package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/baatolabs/baatometrics-api/internal/domain/team"
	"github.com/baatolabs/baatometrics-api/internal/logger"
	"github.com/baatolabs/baatometrics-api/internal/storage"
)

// SessionStore owns the signed-in user and the roster of invited team
// members. There is no real authentication: login accepts any non-empty
// credentials and grants the admin role. Permission flags are always
// derived from the role.
type SessionStore struct {
	mu      sync.Mutex
	backend storage.Backend
	user    *team.User
	members []team.Member
	log     *log.Logger
}

// ProfilePatch is a partial profile update; nil fields are left untouched
type ProfilePatch struct {
	Name   *string `json:"name,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// NewSessionStore loads the persisted user and roster from the backend
func NewSessionStore(backend storage.Backend) *SessionStore {
	s := &SessionStore{
		backend: backend,
		log:     logger.Store("session"),
	}

	if data, err := backend.Load(storage.KeyUser); err == nil {
		var u team.User
		if err := json.Unmarshal(data, &u); err != nil {
			s.log.Error("corrupted user entry, starting signed out", "error", err)
		} else {
			s.user = &u
		}
	} else if err != storage.ErrNotFound {
		s.log.Error("failed to load user, starting signed out", "error", err)
	}

	if data, err := backend.Load(storage.KeyTeam); err == nil {
		if err := json.Unmarshal(data, &s.members); err != nil {
			s.log.Error("corrupted team roster, starting empty", "error", err)
			s.members = nil
		}
	} else if err != storage.ErrNotFound {
		s.log.Error("failed to load team roster, starting empty", "error", err)
	}

	return s
}

// Login signs in with any non-empty email and password, granting the admin
// role. Empty credentials are the only way to fail.
func (s *SessionStore) Login(email, password string) (*team.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := team.NewUser(email, team.RoleAdmin)
	previous := s.user
	s.user = user
	if err := s.persistUserLocked(); err != nil {
		s.user = previous
		return nil, err
	}

	s.log.Info("user signed in", "email", email, "role", user.Role)
	u := *user
	return &u, nil
}

// Logout clears the signed-in user
func (s *SessionStore) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.user
	s.user = nil
	if err := s.backend.Delete(storage.KeyUser); err != nil {
		s.user = previous
		s.log.Error("failed to clear user", "error", err)
		return fmt.Errorf("failed to clear user: %w", err)
	}
	return nil
}

// CurrentUser returns a copy of the signed-in user, or nil
func (s *SessionStore) CurrentUser() *team.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// DisplayName returns the signed-in user's name, used to stamp snapshots
func (s *SessionStore) DisplayName() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return ""
	}
	return s.user.Name
}

// CanMutate reports whether the signed-in user may change record data.
// Derived from the role, consulted by the record store on every mutation.
func (s *SessionStore) CanMutate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.user != nil && s.user.Permissions.CanEdit
}

// Invite adds a pending roster entry for the given address. Requires the
// signed-in user's role to allow inviting.
func (s *SessionStore) Invite(email string, role team.Role) (*team.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil || !s.user.Permissions.CanInvite {
		return nil, ErrPermissionDenied
	}
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role: %q", string(role))
	}

	member := team.NewMember(email, role, s.user.ID)
	previous := s.members
	s.members = append(s.members, *member)
	if err := s.persistTeamLocked(); err != nil {
		s.members = previous
		return nil, err
	}

	s.log.Info("team member invited", "email", email, "role", role)
	m := *member
	return &m, nil
}

// UpdateRole changes a member's role and re-derives their permissions
func (s *SessionStore) UpdateRole(memberID string, role team.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil || !s.user.Permissions.CanManageUsers {
		return ErrPermissionDenied
	}

	idx := s.memberIndexLocked(memberID)
	if idx < 0 {
		return fmt.Errorf("team member %s: %w", memberID, ErrNotFound)
	}

	previous := s.members
	s.members = append([]team.Member(nil), s.members...)
	if err := s.members[idx].SetRole(role); err != nil {
		s.members = previous
		return err
	}
	if err := s.persistTeamLocked(); err != nil {
		s.members = previous
		return err
	}

	s.log.Info("team member role updated", "member_id", memberID, "role", role)
	return nil
}

// RemoveMember removes a roster entry
func (s *SessionStore) RemoveMember(memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil || !s.user.Permissions.CanManageUsers {
		return ErrPermissionDenied
	}

	idx := s.memberIndexLocked(memberID)
	if idx < 0 {
		return fmt.Errorf("team member %s: %w", memberID, ErrNotFound)
	}

	previous := s.members
	s.members = append(append([]team.Member(nil), s.members[:idx]...), s.members[idx+1:]...)
	if err := s.persistTeamLocked(); err != nil {
		s.members = previous
		return err
	}

	s.log.Info("team member removed", "member_id", memberID)
	return nil
}

// Members returns a copy of the roster
func (s *SessionStore) Members() []team.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]team.Member(nil), s.members...)
}

// UpdateProfile patches the signed-in user's profile fields
func (s *SessionStore) UpdateProfile(patch ProfilePatch) (*team.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil, fmt.Errorf("no signed-in user: %w", ErrNotFound)
	}

	updated := *s.user
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Avatar != nil {
		updated.Avatar = *patch.Avatar
	}

	previous := s.user
	s.user = &updated
	if err := s.persistUserLocked(); err != nil {
		s.user = previous
		return nil, err
	}

	u := updated
	return &u, nil
}

func (s *SessionStore) memberIndexLocked(id string) int {
	for i := range s.members {
		if s.members[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *SessionStore) persistUserLocked() error {
	data, err := json.Marshal(s.user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.backend.Save(storage.KeyUser, data); err != nil {
		s.log.Error("failed to persist user", "error", err)
		return fmt.Errorf("failed to persist user: %w", err)
	}
	return nil
}

func (s *SessionStore) persistTeamLocked() error {
	data, err := json.Marshal(s.members)
	if err != nil {
		return fmt.Errorf("failed to encode team roster: %w", err)
	}
	if err := s.backend.Save(storage.KeyTeam, data); err != nil {
		s.log.Error("failed to persist team roster", "error", err)
		return fmt.Errorf("failed to persist team roster: %w", err)
	}
	return nil
}
