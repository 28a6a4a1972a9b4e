package testsupport

import (
	"testing"

	"phonocover/internal/config"
	"phonocover/internal/runstore"
)

// MustOpenRunStore opens the run store for cfg and closes it on cleanup.
func MustOpenRunStore(t testing.TB, cfg *config.Config) *runstore.Store {
	t.Helper()

	store, err := runstore.Open(cfg)
	if err != nil {
		t.Fatalf("runstore.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
