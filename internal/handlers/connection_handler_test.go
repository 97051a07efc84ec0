package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unlinked-app/backend/internal/models"
)

// TestConnectionLifecycle walks the happy path end to end: two signups, a
// request, an acceptance, and the resulting symmetric connection plus the
// notification for the sender.
func TestConnectionLifecycle(t *testing.T) {
	app := newTestApp(t)
	alice := app.newClient(t)
	bob := app.newClient(t)
	alice.signup("Alice", "alice")
	bob.signup("Bob", "bob")

	aliceID := app.userID(t, "alice")
	bobID := app.userID(t, "bob")

	resp, body := alice.do(http.MethodPost, "/api/v1/connections/request/"+pathID(bobID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Connection request sent successfully", body["message"])

	// Bob sees the pending request with Alice's profile attached
	resp, pending := bob.doList(http.MethodGet, "/api/v1/connections/requests")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, pending, 1)
	sender, ok := pending[0]["sender"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice", sender["username"])

	requestID := app.requestID(t, aliceID, bobID)
	resp, body = bob.do(http.MethodPut, "/api/v1/connections/accept/"+pathID(requestID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Connection accepted successfully", body["message"])

	// both sides now list each other
	resp, connections := alice.doList(http.MethodGet, "/api/v1/connections")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, connections, 1)
	assert.Equal(t, "bob", connections[0]["username"])

	resp, connections = bob.doList(http.MethodGet, "/api/v1/connections")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, connections, 1)
	assert.Equal(t, "alice", connections[0]["username"])

	// Alice was notified that Bob accepted
	resp, notifications := alice.doList(http.MethodGet, "/api/v1/notifications")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationConnectionAccepted, notifications[0]["type"])
	relatedUser, ok := notifications[0]["relatedUser"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "bob", relatedUser["username"])

	// a second request is rejected now that they are connected
	resp, _ = alice.do(http.MethodPost, "/api/v1/connections/request/"+pathID(bobID), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSendRequestValidation(t *testing.T) {
	app := newTestApp(t)
	alice := app.newClient(t)
	alice.signup("Alice", "alice")
	aliceID := app.userID(t, "alice")

	resp, _ := alice.do(http.MethodPost, "/api/v1/connections/request/"+pathID(aliceID), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = alice.do(http.MethodPost, "/api/v1/connections/request/99999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = alice.do(http.MethodPost, "/api/v1/connections/request/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAcceptRequiresReceiver(t *testing.T) {
	app := newTestApp(t)
	alice := app.newClient(t)
	bob := app.newClient(t)
	carol := app.newClient(t)
	alice.signup("Alice", "alice")
	bob.signup("Bob", "bob")
	carol.signup("Carol", "carol")

	bobID := app.userID(t, "bob")
	resp, _ := alice.do(http.MethodPost, "/api/v1/connections/request/"+pathID(bobID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	requestID := app.requestID(t, app.userID(t, "alice"), bobID)

	// neither the sender nor a third party may accept
	resp, _ = alice.do(http.MethodPut, "/api/v1/connections/accept/"+pathID(requestID), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = carol.do(http.MethodPut, "/api/v1/connections/accept/"+pathID(requestID), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = bob.do(http.MethodPut, "/api/v1/connections/accept/"+pathID(requestID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAcceptProcessedRequestFails(t *testing.T) {
	app := newTestApp(t)
	alice := app.newClient(t)
	bob := app.newClient(t)
	alice.signup("Alice", "alice")
	bob.signup("Bob", "bob")

	bobID := app.userID(t, "bob")
	resp, _ := alice.do(http.MethodPost, "/api/v1/connections/request/"+pathID(bobID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	requestID := app.requestID(t, app.userID(t, "alice"), bobID)

	resp, _ = bob.do(http.MethodPut, "/api/v1/connections/accept/"+pathID(requestID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := bob.do(http.MethodPut, "/api/v1/connections/accept/"+pathID(requestID), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "This request has already been processed", body["message"])

	resp, _ = bob.do(http.MethodPut, "/api/v1/connections/reject/"+pathID(requestID), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = bob.do(http.MethodPut, "/api/v1/connections/accept/99999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRejectRequest(t *testing.T) {
	app := newTestApp(t)
	alice := app.newClient(t)
	bob := app.newClient(t)
	alice.signup("Alice", "alice")
	bob.signup("Bob", "bob")

	bobID := app.userID(t, "bob")
	resp, _ := alice.do(http.MethodPost, "/api/v1/connections/request/"+pathID(bobID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	requestID := app.requestID(t, app.userID(t, "alice"), bobID)

	resp, body := bob.do(http.MethodPut, "/api/v1/connections/reject/"+pathID(requestID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Connection request rejected", body["message"])

	// no connection, no notification
	resp, connections := alice.doList(http.MethodGet, "/api/v1/connections")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, connections)
	resp, notifications := alice.doList(http.MethodGet, "/api/v1/notifications")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, notifications)

	// rejection does not block a fresh request
	resp, _ = alice.do(http.MethodPost, "/api/v1/connections/request/"+pathID(bobID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestConnectionStatusEndpoint(t *testing.T) {
	app := newTestApp(t)
	alice := app.newClient(t)
	bob := app.newClient(t)
	alice.signup("Alice", "alice")
	bob.signup("Bob", "bob")

	aliceID := app.userID(t, "alice")
	bobID := app.userID(t, "bob")

	resp, body := alice.do(http.MethodGet, "/api/v1/connections/status/"+pathID(bobID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.StatusNotConnected, body["status"])

	resp, _ = alice.do(http.MethodPost, "/api/v1/connections/request/"+pathID(bobID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = alice.do(http.MethodGet, "/api/v1/connections/status/"+pathID(bobID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.StatusPending, body["status"])

	// the receiver side carries the request id for the accept call
	resp, body = bob.do(http.MethodGet, "/api/v1/connections/status/"+pathID(aliceID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.StatusReceived, body["status"])
	requestID, ok := body["requestId"].(float64)
	require.True(t, ok)

	resp, _ = bob.do(http.MethodPut, "/api/v1/connections/accept/"+pathID(uint(requestID)), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = alice.do(http.MethodGet, "/api/v1/connections/status/"+pathID(bobID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.StatusConnected, body["status"])
}

func TestRemoveConnection(t *testing.T) {
	app := newTestApp(t)
	alice := app.newClient(t)
	bob := app.newClient(t)
	alice.signup("Alice", "alice")
	bob.signup("Bob", "bob")

	bobID := app.userID(t, "bob")
	resp, _ := alice.do(http.MethodPost, "/api/v1/connections/request/"+pathID(bobID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	requestID := app.requestID(t, app.userID(t, "alice"), bobID)
	resp, _ = bob.do(http.MethodPut, "/api/v1/connections/accept/"+pathID(requestID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := alice.do(http.MethodDelete, "/api/v1/connections/"+pathID(bobID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Connection removed successfully", body["message"])

	resp, connections := bob.doList(http.MethodGet, "/api/v1/connections")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, connections)

	// removed means a new request is possible again
	resp, _ = bob.do(http.MethodPost, "/api/v1/connections/request/"+pathID(app.userID(t, "alice")), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestConnectionRoutesRequireSession(t *testing.T) {
	app := newTestApp(t)
	anonymous := app.newClient(t)

	resp, _ := anonymous.do(http.MethodGet, "/api/v1/connections", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = anonymous.do(http.MethodPost, "/api/v1/connections/request/1", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
