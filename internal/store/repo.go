package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ReviewEventData captures one review submission attempt.
type ReviewEventData struct {
	CardFilename string
	Topic        string
	Rating       int
	QuizAnswered bool
	QuizCorrect  bool
	Success      bool
	ErrorMessage string
}

// ReviewEventRecord is a stored review event.
type ReviewEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	ReviewEventData
}

// RequestEventData captures one backend API call.
type RequestEventData struct {
	Endpoint     string
	Method       string
	Status       int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// RequestEventRecord is a stored request event.
type RequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	RequestEventData
}

// EndpointUsage aggregates request events per endpoint.
type EndpointUsage struct {
	Endpoint     string
	Calls        int
	Failures     int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the local journal.
type EventRepo interface {
	// AppendReviewEvent records a review submission attempt.
	AppendReviewEvent(ctx context.Context, data ReviewEventData) error

	// AppendRequestEvent records a backend API call.
	AppendRequestEvent(ctx context.Context, data RequestEventData) error

	// QueryReviewEvents returns review events, most recent first.
	QueryReviewEvents(ctx context.Context, opts QueryOpts) ([]ReviewEventRecord, error)

	// QueryRequestEvents returns request events, most recent first.
	QueryRequestEvents(ctx context.Context, opts QueryOpts) ([]RequestEventRecord, error)

	// RequestUsageByEndpoint aggregates request events per endpoint.
	RequestUsageByEndpoint(ctx context.Context) ([]EndpointUsage, error)
}
