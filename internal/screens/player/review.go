package player

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/battlecard/internal/card"
	"github.com/abhisek/battlecard/internal/store"
)

// submit posts rating for the current card. It is a no-op without a card,
// before the final stage is unlocked, and while a submission is in flight.
func (s *PlayerScreen) submit(rating card.Rating) tea.Cmd {
	if s.card == nil || s.seq == nil || s.submitting {
		return nil
	}
	if !s.seq.Complete() || !rating.IsValid() {
		return nil
	}
	s.submitting = true

	seq := s.loadSeq
	client, journal, log := s.deps.Client, s.deps.Journal, s.deps.Log
	review := card.Review{CardFilename: s.card.Filename, Rating: rating}
	event := store.ReviewEventData{
		CardFilename: s.card.Filename,
		Topic:        s.card.Topic,
		Rating:       int(rating),
	}
	if s.quiz != nil {
		event.QuizAnswered = s.quiz.Answered()
		event.QuizCorrect = s.quiz.Correct
	}

	return func() tea.Msg {
		ctx := context.Background()
		err := client.SubmitReview(ctx, review)
		if journal != nil {
			event.Success = err == nil
			if err != nil {
				event.ErrorMessage = err.Error()
			}
			if jerr := journal.AppendReviewEvent(ctx, event); jerr != nil {
				log.Warn("review journal write failed", "error", jerr)
			}
		}
		return reviewSubmittedMsg{Seq: seq, Rating: rating, Err: err}
	}
}

func (s *PlayerScreen) handleReviewSubmitted(msg reviewSubmittedMsg) tea.Cmd {
	if msg.Seq != s.loadSeq {
		return nil
	}
	s.submitting = false

	if msg.Err != nil {
		s.submitErr = msg.Err.Error()
		s.deps.Log.Error("review submit failed", "card", s.card.Filename, "rating", msg.Rating.String(), "error", msg.Err)
		return nil
	}

	s.deps.Log.Info("review submitted", "card", s.card.Filename, "rating", msg.Rating.String())
	return tea.Batch(s.load(), s.refreshStats())
}
