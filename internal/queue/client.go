package queue

import (
	"context"
	"time"
)

// Client publishes screening requests for submitted applications. A nil
// Client means screening runs in-process.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// NewScreeningRequest stamps a message for applicationID at the current
// wire version.
func NewScreeningRequest(applicationID, requestID string, at time.Time) Message {
	return Message{
		ApplicationID: applicationID,
		RequestID:     requestID,
		EnqueuedAt:    at.UTC().Format(time.RFC3339),
		Version:       MessageVersion,
	}
}
