package apiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundtrip(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = fs.Get(KeyAccessToken)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, fs.Set(KeyAccessToken, "tok-1"))
	got, err := fs.Get(KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)

	require.NoError(t, fs.Set(KeyAccessToken, "tok-2"))
	got, err = fs.Get(KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got)

	require.NoError(t, fs.Delete(KeyAccessToken))
	_, err = fs.Get(KeyAccessToken)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// deleting a missing key is not an error
	require.NoError(t, fs.Delete(KeyAccessToken))
}

func TestFileStoreClear(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.Set(KeyAccessToken, "a"))
	require.NoError(t, fs.Set(KeyRefreshToken, "r"))
	require.NoError(t, fs.Set(KeyUser, `{"id":1}`))
	require.NoError(t, fs.Set(KeyFilterPrefs, `{}`))

	require.NoError(t, fs.Clear())

	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyUser, KeyFilterPrefs} {
		_, err := fs.Get(key)
		assert.ErrorIs(t, err, ErrKeyNotFound, key)
	}
}
