package client

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_writeThrough(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewSessionStore(storage)

	require.NoError(t, store.SetUser(&SessionUser{ID: 3, Username: "carla", Role: "CLIENT"}))

	// Memory and storage agree immediately after the write.
	stored, ok := storage.Get("currentUser")
	assert.True(t, ok)
	assert.Contains(t, stored, `"username":"carla"`)

	require.NoError(t, store.SetUser(nil))
	_, ok = storage.Get("currentUser")
	assert.False(t, ok)
	assert.False(t, store.IsLoggedIn())
}

func TestSessionStore_corruptEntryDropped(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set("currentUser", "{not json"))

	store := NewSessionStore(storage)

	assert.Nil(t, store.User())
	_, ok := storage.Get("currentUser")
	assert.False(t, ok)
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := NewFileStorage(path)

	_, ok := storage.Get("currentUser")
	assert.False(t, ok)

	require.NoError(t, storage.Set("currentUser", `{"id":3}`))

	reopened := NewFileStorage(path)
	value, ok := reopened.Get("currentUser")
	assert.True(t, ok)
	assert.Equal(t, `{"id":3}`, value)

	require.NoError(t, reopened.Delete("currentUser"))
	_, ok = storage.Get("currentUser")
	assert.False(t, ok)
}

func TestFeedNotifier_expiry(t *testing.T) {
	notifier := NewFeedNotifier(100 * time.Millisecond)
	base := time.Now()
	notifier.now = func() time.Time { return base }

	notifier.Success("¡Sesión iniciada correctamente!")
	notifier.Error("Credenciales incorrectas")

	active := notifier.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "success", active[0].Type)
	assert.Equal(t, "error", active[1].Type)

	notifier.now = func() time.Time { return base.Add(200 * time.Millisecond) }
	assert.Empty(t, notifier.Active())
}
