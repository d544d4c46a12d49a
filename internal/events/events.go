// Package events declares the payloads published on the event bus by the
// server and the nonNull resolver. Handlers receive the request context.
package events

import (
	"net/http"
	"time"
)

// HTTPStart fires when the server accepts a request.
type HTTPStart struct {
	Request *http.Request
}

// HTTPFinish fires once the response status is known.
type HTTPFinish struct {
	Request  *http.Request
	Status   int
	Duration time.Duration
}

// GraphQLStart fires after the document parsed and before execution.
type GraphQLStart struct {
	Query         string
	OperationName string
	OperationType string
}

// GraphQLFinish carries the execution errors of one operation, including
// rejected null inputs.
type GraphQLFinish struct {
	Query         string
	OperationName string
	OperationType string
	Errors        []error
	Duration      time.Duration
}

// NullInputRejected fires when a resolver refuses an explicit null at a tagged input path.
type NullInputRejected struct {
	ObjectType string
	Field      string
	Path       string
}
