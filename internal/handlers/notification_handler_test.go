package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// connectUsers signs both clients up, sends a request from the first to the
// second and accepts it, leaving one connectionAccepted notification for the
// sender.
func connectUsers(t *testing.T, app *testApp, sender, receiver *client, senderName, receiverName string) {
	t.Helper()
	sender.signup(senderName, senderName)
	receiver.signup(receiverName, receiverName)

	receiverID := app.userID(t, receiverName)
	resp, _ := sender.do(http.MethodPost, "/api/v1/connections/request/"+pathID(receiverID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	requestID := app.requestID(t, app.userID(t, senderName), receiverID)
	resp, _ = receiver.do(http.MethodPut, "/api/v1/connections/accept/"+pathID(requestID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMarkNotificationAsRead(t *testing.T) {
	app := newTestApp(t)
	alice := app.newClient(t)
	bob := app.newClient(t)
	connectUsers(t, app, alice, bob, "alice", "bob")

	resp, notifications := alice.doList(http.MethodGet, "/api/v1/notifications")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, notifications, 1)
	assert.Equal(t, false, notifications[0]["read"])
	id := uint(notifications[0]["id"].(float64))

	resp, _ = alice.do(http.MethodPut, "/api/v1/notifications/"+pathID(id)+"/read", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, notifications = alice.doList(http.MethodGet, "/api/v1/notifications")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, notifications, 1)
	assert.Equal(t, true, notifications[0]["read"])
}

func TestNotificationActionsAreRecipientScoped(t *testing.T) {
	app := newTestApp(t)
	alice := app.newClient(t)
	bob := app.newClient(t)
	connectUsers(t, app, alice, bob, "alice", "bob")

	_, notifications := alice.doList(http.MethodGet, "/api/v1/notifications")
	require.Len(t, notifications, 1)
	id := uint(notifications[0]["id"].(float64))

	// Bob's session cannot affect Alice's notification
	resp, _ := bob.do(http.MethodPut, "/api/v1/notifications/"+pathID(id)+"/read", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = bob.do(http.MethodDelete, "/api/v1/notifications/"+pathID(id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, notifications = alice.doList(http.MethodGet, "/api/v1/notifications")
	require.Len(t, notifications, 1)
	assert.Equal(t, false, notifications[0]["read"])
}

func TestDeleteNotification(t *testing.T) {
	app := newTestApp(t)
	alice := app.newClient(t)
	bob := app.newClient(t)
	connectUsers(t, app, alice, bob, "alice", "bob")

	_, notifications := alice.doList(http.MethodGet, "/api/v1/notifications")
	require.Len(t, notifications, 1)
	id := uint(notifications[0]["id"].(float64))

	resp, _ := alice.do(http.MethodDelete, "/api/v1/notifications/"+pathID(id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, notifications = alice.doList(http.MethodGet, "/api/v1/notifications")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, notifications)
}
