// SPDX-License-Identifier: MPL-2.0

package tasks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
)

// DefaultEventPath is the event file used by invoke when --event is not given.
const DefaultEventPath = "events/test-event.json"

// SampleEvent returns an API Gateway proxy request for POST /query, the shape
// the document extraction function receives behind API Gateway.
func SampleEvent(stage string, now time.Time) events.APIGatewayProxyRequest {
	body, _ := json.Marshal(map[string]string{
		"file_id":    uuid.NewString(),
		"user_query": "What is the total amount on this invoice?",
	})

	return events.APIGatewayProxyRequest{
		Resource:   "/query",
		Path:       "/query",
		HTTPMethod: "POST",
		Headers: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:        uuid.NewString(),
			Stage:            stage,
			ResourcePath:     "/query",
			HTTPMethod:       "POST",
			RequestTimeEpoch: now.UnixMilli(),
			Identity: events.APIGatewayRequestIdentity{
				SourceIP:  "127.0.0.1",
				UserAgent: "devcmd",
			},
		},
		Body: string(body),
	}
}

// WriteSampleEvent writes SampleEvent to path, creating parent directories.
func WriteSampleEvent(path, stage string, now time.Time) error {
	data, err := json.MarshalIndent(SampleEvent(stage, now), "", "  ")
	if err != nil {
		return fmt.Errorf("encode sample event: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create event directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write sample event: %w", err)
	}
	return nil
}
