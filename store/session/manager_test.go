package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/storenav/store/engine"
)

func TestManager_Create(t *testing.T) {
	manager := NewManager()
	config := engine.DefaultStoreConfig()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session", config)
		require.NoError(t, err)
		assert.Equal(t, "test-session", session.ID)
		assert.NotNil(t, session.Engine)
		assert.Empty(t, session.ShoppingList)
		assert.Nil(t, session.Start)
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("", config)
		require.NoError(t, err)
		assert.Len(t, session.ID, 4)
	})

	t.Run("duplicate session ID", func(t *testing.T) {
		_, err := manager.Create("test-session", config)
		assert.ErrorIs(t, err, ErrSessionAlreadyExists)
	})

	t.Run("case-insensitive duplicate check", func(t *testing.T) {
		_, err := manager.Create("TEST-SESSION", config)
		assert.ErrorIs(t, err, ErrSessionAlreadyExists)
	})

	t.Run("invalid ID", func(t *testing.T) {
		_, err := manager.Create("a/b", config)
		assert.ErrorIs(t, err, ErrInvalidSessionID)
	})

	t.Run("invalid config", func(t *testing.T) {
		invalid := engine.DefaultStoreConfig()
		invalid.Name = ""
		_, err := manager.Create("invalid-test", invalid)
		assert.Error(t, err)
		assert.Equal(t, 2, manager.Count())
	})
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()
	created, err := manager.Create("Get-Test", engine.DefaultStoreConfig())
	require.NoError(t, err)

	got, err := manager.Get("get-test")
	require.NoError(t, err)
	assert.Same(t, created, got)

	_, err = manager.Get("nope")
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestManager_GetOrCreate(t *testing.T) {
	manager := NewManager()
	config := engine.DefaultStoreConfig()

	first, err := manager.GetOrCreate("shop", config)
	require.NoError(t, err)
	second, err := manager.GetOrCreate("shop", config)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, manager.Count())
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()
	_, err := manager.Create("gone", engine.DefaultStoreConfig())
	require.NoError(t, err)

	require.NoError(t, manager.Delete("GONE"))
	assert.ErrorIs(t, manager.Delete("gone"), ErrSessionNotFound)
	assert.Empty(t, manager.List())
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()
	session, err := manager.Create("touch", engine.DefaultStoreConfig())
	require.NoError(t, err)

	before := session.LastAccessedAt
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, manager.UpdateLastAccessed("touch"))
	assert.True(t, session.LastAccessedAt.After(before))

	assert.ErrorIs(t, manager.UpdateLastAccessed("missing"), ErrSessionNotFound)
}

func TestManager_CleanupExpiredSessions(t *testing.T) {
	manager := NewManager()
	config := engine.DefaultStoreConfig()

	old, err := manager.Create("old", config)
	require.NoError(t, err)
	old.LastAccessedAt = time.Now().Add(-2 * time.Hour)
	_, err = manager.Create("fresh", config)
	require.NoError(t, err)

	removed := manager.CleanupExpiredSessions(time.Hour)

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, manager.Count())
	_, err = manager.Get("fresh")
	assert.NoError(t, err)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()
	config := engine.DefaultStoreConfig()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("session-%d", i)
			_, err := manager.Create(id, config)
			assert.NoError(t, err)
			_, err = manager.Get(id)
			assert.NoError(t, err)
			assert.NoError(t, manager.UpdateLastAccessed(id))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, manager.Count())
}

func TestManager_GenerateSessionIDFallsBackToLongID(t *testing.T) {
	manager := NewManager()
	for i := 0; i < 1<<16; i++ {
		manager.sessions[fmt.Sprintf("%04x", i)] = nil
	}

	id := manager.generateSessionID()
	assert.Len(t, id, 2*longIDBytes)
	assert.False(t, manager.sessionExists(id))
}

func TestManager_CreateWithFullShortIDSpace(t *testing.T) {
	manager := NewManager()
	for i := 0; i < 1<<16; i++ {
		manager.sessions[fmt.Sprintf("%04x", i)] = nil
	}

	session, err := manager.Create("", engine.DefaultStoreConfig())
	require.NoError(t, err)
	assert.Len(t, session.ID, 8)
	_, err = manager.Get(session.ID)
	assert.NoError(t, err)
}
