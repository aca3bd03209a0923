package apiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterPreferencesRoundtrip(t *testing.T) {
	c := New("http://unused", NewMemStore())

	// nothing saved yet: zero value, no error
	p, err := c.FilterPrefs()
	require.NoError(t, err)
	assert.Empty(t, p.DietaryRestrictions)

	saved := FilterPreferences{
		DietaryRestrictions: []string{"vegan", "halal"},
		Allergens:           []string{"nuts"},
		PricePerPersonBand:  "10-15",
	}
	require.NoError(t, c.SaveFilterPreferences(saved))

	p, err = c.FilterPrefs()
	require.NoError(t, err)
	assert.Equal(t, saved, p)

	require.NoError(t, c.ClearFilterPreferences())
	p, err = c.FilterPrefs()
	require.NoError(t, err)
	assert.Empty(t, p.Allergens)
}

func TestLogoutClearsPreferencesToo(t *testing.T) {
	c := New("http://unused", NewMemStore())
	require.NoError(t, c.SaveFilterPreferences(FilterPreferences{PricePerPersonBand: "15+"}))
	require.NoError(t, c.Store.Set(KeyAccessToken, "a"))

	require.NoError(t, c.Logout())

	_, err := c.Store.Get(KeyAccessToken)
	assert.ErrorIs(t, err, ErrKeyNotFound)
	_, err = c.Store.Get(KeyFilterPrefs)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
