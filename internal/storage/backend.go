package storage

import "errors"

// ErrNotFound is returned when a key has no stored value
var ErrNotFound = errors.New("key not found")

// Backend is the injected persistence layer the stores save through.
// Values are opaque JSON blobs; a backend never interprets them.
//
// Concurrent processes writing the same key race with last-write-wins
// semantics, matching how two browser tabs raced on the original local
// storage. Nothing here coordinates across processes.
type Backend interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Delete(key string) error
}

// Well-known keys. The baatometrics- prefixes are kept from the original
// local-storage layout so exported data stays recognizable.
const (
	KeyRecords       = "baatometrics-data"
	KeyImages        = "baatometrics-images"
	KeyUser          = "baatometrics-user"
	KeyTeam          = "baatometrics-team"
	KeyNotifications = "baatometrics-notifications"
	KeyReports       = "baatometrics-reports"
	KeyShortLinks    = "baatometrics-shortlinks"
)

// ShareKey returns the per-snapshot key for a share id
func ShareKey(id string) string {
	return "baato-shared-" + id
}
