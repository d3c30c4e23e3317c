package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendReviewEvent(ctx context.Context, data ReviewEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(reviewEventsTable.Name).
		Set("sequence", seqNum).
		Set("ts_ms", time.Now().UnixMilli()).
		Set("card_filename", data.CardFilename).
		Set("topic", data.Topic).
		Set("rating", data.Rating).
		Set("quiz_answered", data.QuizAnswered).
		Set("quiz_correct", data.QuizCorrect).
		Set("success", data.Success).
		Set("error_message", data.ErrorMessage).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save review event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryReviewEvents(ctx context.Context, opts QueryOpts) ([]ReviewEventRecord, error) {
	query, args := opts.selector(reviewEventsTable.Name,
		"id", "sequence", "ts_ms", "card_filename", "topic", "rating",
		"quiz_answered", "quiz_correct", "success", "error_message",
	).Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query review events: %w", err)
	}
	defer rows.Close()

	var out []ReviewEventRecord
	for rows.Next() {
		var rec ReviewEventRecord
		var ts int64
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.CardFilename, &rec.Topic, &rec.Rating,
			&rec.QuizAnswered, &rec.QuizCorrect, &rec.Success, &rec.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan review event: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}
