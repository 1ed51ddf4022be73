package invite

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/baatolabs/baatometrics-api/internal/logger"
	"github.com/baatolabs/baatometrics-api/internal/storage"
)

// ShortLinks maps short codes to invitation tokens so invitees get a link
// they can actually type. The mapping is persisted through the backend.
type ShortLinks struct {
	mu      sync.Mutex
	backend storage.Backend
	links   map[string]string
	log     *log.Logger
}

// NewShortLinks loads the persisted code-to-token mapping
func NewShortLinks(backend storage.Backend) *ShortLinks {
	s := &ShortLinks{
		backend: backend,
		links:   make(map[string]string),
		log:     logger.Invite(),
	}

	data, err := backend.Load(storage.KeyShortLinks)
	if err != nil {
		if err != storage.ErrNotFound {
			s.log.Error("failed to load short links, starting empty", "error", err)
		}
		return s
	}
	if err := json.Unmarshal(data, &s.links); err != nil {
		s.log.Error("corrupted short link map, starting empty", "error", err)
		s.links = make(map[string]string)
	}
	return s
}

// Create mints a fresh short code for the token and persists the mapping
func (s *ShortLinks) Create(token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := newCode()
	for s.links[code] != "" {
		code = newCode()
	}

	s.links[code] = token
	if err := s.persistLocked(); err != nil {
		delete(s.links, code)
		return "", err
	}

	s.log.Info("short link created", "code", code)
	return code, nil
}

// Resolve returns the token behind a code, or false when the code is unknown
func (s *ShortLinks) Resolve(code string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.links[code]
	return token, ok
}

func (s *ShortLinks) persistLocked() error {
	data, err := json.Marshal(s.links)
	if err != nil {
		return fmt.Errorf("failed to encode short links: %w", err)
	}
	if err := s.backend.Save(storage.KeyShortLinks, data); err != nil {
		s.log.Error("failed to persist short links", "error", err)
		return fmt.Errorf("failed to persist short links: %w", err)
	}
	return nil
}

func newCode() string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 8)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}
