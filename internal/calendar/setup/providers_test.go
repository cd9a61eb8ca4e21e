package setup

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestNewMeetingSource(t *testing.T) {
	ctx := context.Background()

	t.Run("no provider yields nil", func(t *testing.T) {
		for _, name := range []string{"", "none", " NONE "} {
			source, err := NewMeetingSource(ctx, ProviderConfig{Provider: name})
			require.NoError(t, err)
			assert.Nil(t, source)
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewMeetingSource(ctx, ProviderConfig{Provider: "exchange"})
		assert.ErrorIs(t, err, ErrUnknownProvider)
	})

	t.Run("caldav requires a url", func(t *testing.T) {
		_, err := NewMeetingSource(ctx, ProviderConfig{
			Provider: ProviderCalDAV,
			CalDAV:   CalDAVConfig{Username: "me"},
		})
		assert.Error(t, err)
	})

	t.Run("caldav requires a username", func(t *testing.T) {
		_, err := NewMeetingSource(ctx, ProviderConfig{
			Provider: ProviderCalDAV,
			CalDAV:   CalDAVConfig{URL: "https://dav.example.com"},
		})
		assert.Error(t, err)
	})

	t.Run("caldav is wrapped once", func(t *testing.T) {
		source, err := NewMeetingSource(ctx, ProviderConfig{
			Provider: "CalDAV",
			CalDAV:   CalDAVConfig{URL: "https://dav.example.com", Username: "me", Password: "secret"},
		})
		require.NoError(t, err)
		require.NotNil(t, source)
		assert.Equal(t, 1, source.Len())
	})

	t.Run("apple defaults the url", func(t *testing.T) {
		source, err := NewMeetingSource(ctx, ProviderConfig{
			Provider: ProviderApple,
			CalDAV:   CalDAVConfig{Username: "me@icloud.com", Password: "app-password"},
		})
		require.NoError(t, err)
		assert.NotNil(t, source)
	})

	t.Run("google requires a client id", func(t *testing.T) {
		_, err := NewMeetingSource(ctx, ProviderConfig{Provider: ProviderGoogle})
		assert.Error(t, err)
	})

	t.Run("google requires a token file", func(t *testing.T) {
		_, err := NewMeetingSource(ctx, ProviderConfig{
			Provider: ProviderGoogle,
			Google:   GoogleConfig{ClientID: "client", TokenFile: filepath.Join(t.TempDir(), "missing.json")},
		})
		assert.Error(t, err)
	})

	t.Run("google with a stored token", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		data, err := json.Marshal(&oauth2.Token{AccessToken: "access", RefreshToken: "refresh"})
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data, 0o600))

		source, err := NewMeetingSource(ctx, ProviderConfig{
			Provider: ProviderGoogle,
			Google:   GoogleConfig{ClientID: "client", ClientSecret: "secret", TokenFile: path, CalendarID: "team"},
		})

		require.NoError(t, err)
		require.NotNil(t, source)
		assert.Equal(t, 1, source.Len())
	})
}
