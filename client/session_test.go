package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSessionMissingFile(t *testing.T) {
	s := LoadSession(filepath.Join(t.TempDir(), "session.json"))
	assert.False(t, s.LoggedIn())
}

func TestLoadSessionCorruptFileClearsIt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	s := LoadSession(path)
	assert.False(t, s.LoggedIn())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := LoadSession(path)
	s.Token = "tok123"
	s.User = SessionUser{ID: "u1", Username: "ann", Email: "ann@example.com"}
	require.NoError(t, s.Save())

	loaded := LoadSession(path)
	assert.True(t, loaded.LoggedIn())
	assert.Equal(t, "tok123", loaded.Token)
	assert.Equal(t, "ann", loaded.User.Username)

	loaded.Clear()
	assert.False(t, loaded.LoggedIn())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSignInPersistsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pathSignin, r.URL.Path)

		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		assert.Equal(t, "ann@example.com", creds["email"])

		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok456",
			"user":  map[string]string{"id": "u1", "username": "ann", "email": "ann@example.com"},
		})
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "session.json")
	s := LoadSession(path)
	c := New(server.URL, testHosts())

	require.NoError(t, c.SignIn(context.Background(), s, "ann@example.com", "hunter2!A"))
	assert.Equal(t, "tok456", s.Token)

	assert.True(t, LoadSession(path).LoggedIn())
}

func TestSignInRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password"})
	}))
	defer server.Close()

	s := LoadSession(filepath.Join(t.TempDir(), "session.json"))
	c := New(server.URL, testHosts())

	err := c.SignIn(context.Background(), s, "ann@example.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid email or password")
	assert.False(t, s.LoggedIn())
}
