package api

import (
	"context"
	"net/http"
	"time"

	"github.com/abhisek/battlecard/internal/card"
	"github.com/abhisek/battlecard/internal/logger"
	"github.com/abhisek/battlecard/internal/store"
)

// JournalClient is a decorator that records every backend call as a request
// event and a debug log line.
type JournalClient struct {
	inner     Client
	eventRepo store.EventRepo
	log       *logger.Logger
}

// WithJournal wraps a Client with request journaling. Either repo or log may
// be nil.
func WithJournal(c Client, repo store.EventRepo, log *logger.Logger) Client {
	if log == nil {
		log = logger.Nop()
	}
	return &JournalClient{inner: c, eventRepo: repo, log: log}
}

func (j *JournalClient) NextCard(ctx context.Context, topic string) (*card.Card, error) {
	start := time.Now()
	c, err := j.inner.NextCard(ctx, topic)
	j.record(ctx, EndpointCard, http.MethodGet, start, err)
	return c, err
}

func (j *JournalClient) Stats(ctx context.Context) (*card.Stats, error) {
	start := time.Now()
	s, err := j.inner.Stats(ctx)
	j.record(ctx, EndpointStats, http.MethodGet, start, err)
	return s, err
}

func (j *JournalClient) Roadmap(ctx context.Context) ([]card.RoadmapItem, error) {
	start := time.Now()
	items, err := j.inner.Roadmap(ctx)
	j.record(ctx, EndpointRoadmap, http.MethodGet, start, err)
	return items, err
}

func (j *JournalClient) SubmitReview(ctx context.Context, review card.Review) error {
	start := time.Now()
	err := j.inner.SubmitReview(ctx, review)
	j.record(ctx, EndpointReview, http.MethodPost, start, err)
	return err
}

func (j *JournalClient) record(ctx context.Context, endpoint, method string, start time.Time, err error) {
	latency := time.Since(start).Milliseconds()
	data := store.RequestEventData{
		Endpoint:  endpoint,
		Method:    method,
		Status:    StatusOf(err),
		LatencyMs: latency,
		Success:   err == nil,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		j.log.Warn("backend call failed", "endpoint", endpoint, "status", data.Status, "latency_ms", latency, "error", err)
	} else {
		j.log.Debug("backend call", "endpoint", endpoint, "latency_ms", latency)
	}

	if j.eventRepo == nil {
		return
	}
	// Journal failures never fail the call.
	if logErr := j.eventRepo.AppendRequestEvent(ctx, data); logErr != nil {
		j.log.Error("failed to journal request", "endpoint", endpoint, "error", logErr)
	}
}
