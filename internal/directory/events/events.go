// Package events defines the domain event envelopes published after every
// successful branch or employee mutation, and the logical channels carrying
// them. Envelopes are immutable once constructed; field names form the wire
// contract and stay stable across versions. Consumers ignore unknown fields.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Logical channel names.
const (
	TopicBranchEvents       = "branch-events"
	TopicEmployeeEvents     = "employee-events"
	TopicNotificationEvents = "notification-events"
)

// Topics lists every channel this system publishes to or consumes from.
func Topics() []string {
	return []string{TopicBranchEvents, TopicEmployeeEvents, TopicNotificationEvents}
}

// Kind tags the mutation an event describes.
type Kind string

const (
	KindCreate Kind = "CREATE"
	KindUpdate Kind = "UPDATE"
	KindDelete Kind = "DELETE"
)

// BranchEvent snapshots a branch mutation. EventID and Timestamp are assigned
// by the publisher when absent.
type BranchEvent struct {
	EventID     string    `json:"event_id"`
	EventType   Kind      `json:"event_type"`
	BranchID    uuid.UUID `json:"branch_id"`
	BranchCode  string    `json:"branch_code"`
	BranchName  string    `json:"branch_name"`
	Address     string    `json:"address,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	UserID      string    `json:"user_id,omitempty"`
}

// EmployeeEvent snapshots an employee mutation. Branch code and name are
// denormalized so downstream consumers need no directory lookup.
type EmployeeEvent struct {
	EventID      string    `json:"event_id"`
	EventType    Kind      `json:"event_type"`
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	EmployeeName string    `json:"employee_name"`
	Email        string    `json:"email,omitempty"`
	PhoneNumber  string    `json:"phone_number"`
	BranchID     uuid.UUID `json:"branch_id"`
	BranchCode   string    `json:"branch_code"`
	BranchName   string    `json:"branch_name"`
	Timestamp    time.Time `json:"timestamp"`
	UserID       string    `json:"user_id,omitempty"`
}

// Notification is a free-form message for downstream alerting.
type Notification struct {
	EventID   string    `json:"event_id"`
	Message   string    `json:"message"`
	UserID    string    `json:"user_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
