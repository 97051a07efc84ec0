package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const sendAPIURL = "https://send.api.mailtrap.io/api/send"

// Mailer is the narrow interface the handlers depend on. Every send is
// best-effort: callers log failures and never surface them.
type Mailer interface {
	SendWelcomeEmail(ctx context.Context, email, name, profileURL string) error
	SendCommentNotificationEmail(ctx context.Context, email, recipientName, commenterName, postURL, commentContent string) error
	SendConnectionAcceptedEmail(ctx context.Context, email, senderName, accepterName, profileURL string) error
}

// MailtrapClient sends template-rendered HTML emails through the Mailtrap
// send API
type MailtrapClient struct {
	token      string
	fromEmail  string
	fromName   string
	apiURL     string
	httpClient *http.Client
}

// NewMailtrapClient creates a new MailtrapClient
func NewMailtrapClient(token, fromEmail, fromName string) *MailtrapClient {
	return &MailtrapClient{
		token:      token,
		fromEmail:  fromEmail,
		fromName:   fromName,
		apiURL:     sendAPIURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendPayload struct {
	From     address   `json:"from"`
	To       []address `json:"to"`
	Subject  string    `json:"subject"`
	HTML     string    `json:"html"`
	Category string    `json:"category"`
}

// SendWelcomeEmail greets a freshly registered account
func (m *MailtrapClient) SendWelcomeEmail(ctx context.Context, email, name, profileURL string) error {
	return m.send(ctx, sendPayload{
		From:     address{Email: m.fromEmail, Name: m.fromName},
		To:       []address{{Email: email}},
		Subject:  "Welcome to Unlinked",
		HTML:     welcomeEmailTemplate(name, profileURL),
		Category: "Welcome",
	})
}

// SendCommentNotificationEmail tells a post author about a new comment
func (m *MailtrapClient) SendCommentNotificationEmail(ctx context.Context, email, recipientName, commenterName, postURL, commentContent string) error {
	return m.send(ctx, sendPayload{
		From:     address{Email: m.fromEmail, Name: m.fromName},
		To:       []address{{Email: email}},
		Subject:  "New Comment on Your Post",
		HTML:     commentNotificationEmailTemplate(recipientName, commenterName, postURL, commentContent),
		Category: "comment_notification",
	})
}

// SendConnectionAcceptedEmail tells the original sender their request was
// accepted
func (m *MailtrapClient) SendConnectionAcceptedEmail(ctx context.Context, email, senderName, accepterName, profileURL string) error {
	return m.send(ctx, sendPayload{
		From:     address{Email: m.fromEmail, Name: m.fromName},
		To:       []address{{Email: email}},
		Subject:  fmt.Sprintf("%s accepted your connection request", accepterName),
		HTML:     connectionAcceptedEmailTemplate(senderName, accepterName, profileURL),
		Category: "connection_accepted",
	})
}

func (m *MailtrapClient) send(ctx context.Context, payload sendPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.token)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("mailtrap send failed with status %d", resp.StatusCode)
	}
	return nil
}
