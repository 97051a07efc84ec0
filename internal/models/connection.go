package models

import "gorm.io/gorm"

// Connection request lifecycle states. Pending is the only non-terminal
// state; accepted and rejected rows are kept as history.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// Relationship statuses reported to the client. Casing follows what the
// client renders directly.
const (
	StatusConnected    = "connected"
	StatusPending      = "Pending"
	StatusReceived     = "Received"
	StatusNotConnected = "Not connected"
)

// ConnectionRequest is a directed, stateful proposal to become connected
type ConnectionRequest struct {
	gorm.Model `json:"-"`
	ID         uint   `json:"id" gorm:"primaryKey"`
	SenderID   uint   `json:"sender_id" gorm:"index"`
	ReceiverID uint   `json:"receiver_id" gorm:"index"`
	Status     string `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	Sender   *User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Receiver *User `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
}

// PendingRequest is a pending request enriched with the sender's public
// profile, as listed on the network page.
type PendingRequest struct {
	ID     uint          `json:"id"`
	Sender PublicProfile `json:"sender"`
}

// ConnectionStatus is the response body of the status endpoint. RequestID is
// set only for the Received state so the client can accept or reject it.
type ConnectionStatus struct {
	Status    string `json:"status"`
	RequestID uint   `json:"requestId,omitempty"`
}
