package main

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"jobportal/internal/applications"
)

type stubProcessor map[string]error

func (s stubProcessor) ScreenApplication(ctx context.Context, applicationID string) error {
	return s[applicationID]
}

func TestHandleBatchReportsOnlyRetryableFailures(t *testing.T) {
	p := stubProcessor{
		"flaky": errors.New("s3 timeout"),
		"gone":  applications.ErrNotFound,
	}
	event := events.SQSEvent{Records: []events.SQSMessage{
		{MessageId: "ok", Body: `{"applicationId":"a-1"}`},
		{MessageId: "retry", Body: `{"applicationId":"flaky"}`},
		{MessageId: "drop-missing", Body: `{"applicationId":"gone"}`},
		{MessageId: "drop-bad", Body: `not json`},
	}}

	resp := handleBatch(context.Background(), p, event)

	if len(resp.BatchItemFailures) != 1 {
		t.Fatalf("expected 1 failure, got %+v", resp.BatchItemFailures)
	}
	if resp.BatchItemFailures[0].ItemIdentifier != "retry" {
		t.Fatalf("unexpected failure id %q", resp.BatchItemFailures[0].ItemIdentifier)
	}
}
