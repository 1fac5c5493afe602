package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"staffdir/internal/directory/events"
	"staffdir/internal/directory/models"
	dErrors "staffdir/pkg/domain-errors"
)

// requireMessage asserts the human-readable message on a domain error.
func requireMessage(t *testing.T, err error, want string) {
	t.Helper()
	var dErr *dErrors.Error
	require.ErrorAs(t, err, &dErr)
	require.Equal(t, want, dErr.Message)
}

// capturePublisher records every published event for assertion.
type capturePublisher struct {
	mu            sync.Mutex
	branchEvents  []events.BranchEvent
	empEvents     []events.EmployeeEvent
	notifications []events.Notification
}

func (p *capturePublisher) PublishBranchEvent(_ context.Context, ev events.BranchEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.branchEvents = append(p.branchEvents, ev)
}

func (p *capturePublisher) PublishEmployeeEvent(_ context.Context, ev events.EmployeeEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.empEvents = append(p.empEvents, ev)
}

func (p *capturePublisher) PublishNotification(_ context.Context, message, userID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications = append(p.notifications, events.Notification{Message: message, UserID: userID})
}

func validBranchRequest() models.BranchRequest {
	return models.BranchRequest{
		Code:        "HO",
		Name:        "Head Office",
		Address:     "1 Main Street",
		PhoneNumber: "088812345678",
	}
}

func validEmployeeRequest(branchID uuid.UUID) models.EmployeeRequest {
	return models.EmployeeRequest{
		EmployeeCode: "EMP001",
		FirstName:    "John",
		LastName:     "Doe",
		Email:        "john.doe@example.com",
		PhoneNumber:  "088812345678",
		HireDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Position:     "Teller",
		BranchID:     branchID,
	}
}
