package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoltTokenStoreRoundTrip(t *testing.T) {
	store, err := OpenBoltTokenStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Get()
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Set([]byte(`{"id":"1"}`)))
	got, err = store.Get()
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"1"}`), got)

	require.NoError(t, store.Delete())
	got, err = store.Get()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBoltTokenStoreOverwrite(t *testing.T) {
	store, err := OpenBoltTokenStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set([]byte("first")))
	require.NoError(t, store.Set([]byte("second")))

	got, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}
