package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMailer(t *testing.T, handler http.HandlerFunc) (*MailtrapClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewMailtrapClient("test-token", "mail@unlinked.example", "Unlinked")
	client.apiURL = server.URL
	return client, server
}

func TestSendConnectionAcceptedEmail(t *testing.T) {
	var captured sendPayload
	var authHeader string
	client, _ := newTestMailer(t, func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	})

	err := client.SendConnectionAcceptedEmail(context.Background(),
		"alice@example.com", "Alice", "Bob", "http://localhost:5173/profile/bob")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", authHeader)
	assert.Equal(t, "mail@unlinked.example", captured.From.Email)
	require.Len(t, captured.To, 1)
	assert.Equal(t, "alice@example.com", captured.To[0].Email)
	assert.Equal(t, "Bob accepted your connection request", captured.Subject)
	assert.Equal(t, "connection_accepted", captured.Category)
	assert.Contains(t, captured.HTML, "Alice")
	assert.Contains(t, captured.HTML, "http://localhost:5173/profile/bob")
}

func TestSendWelcomeEmail(t *testing.T) {
	var captured sendPayload
	client, _ := newTestMailer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	})

	err := client.SendWelcomeEmail(context.Background(),
		"alice@example.com", "Alice", "http://localhost:5173/profile/alice")
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Unlinked", captured.Subject)
	assert.Contains(t, captured.HTML, "Alice")
}

func TestSendCommentNotificationEmail(t *testing.T) {
	var captured sendPayload
	client, _ := newTestMailer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	})

	err := client.SendCommentNotificationEmail(context.Background(),
		"alice@example.com", "Alice", "Bob", "http://localhost:5173/post/abc", "Nice post!")
	require.NoError(t, err)

	assert.Equal(t, "New Comment on Your Post", captured.Subject)
	assert.Contains(t, captured.HTML, "Bob")
	assert.Contains(t, captured.HTML, "Nice post!")
}

func TestSendReportsAPIFailure(t *testing.T) {
	client, _ := newTestMailer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	err := client.SendWelcomeEmail(context.Background(),
		"alice@example.com", "Alice", "http://localhost:5173/profile/alice")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "401"))
}
