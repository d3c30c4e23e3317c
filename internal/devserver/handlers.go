package devserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhisek/battlecard/internal/card"
	"github.com/abhisek/battlecard/internal/logger"
)

// handleCard serves the requested topic when it matches a card, otherwise
// the head of the review queue.
func handleCard(deck *Deck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if topic := r.URL.Query().Get("topic"); topic != "" {
			if c, ok := deck.ByTopic(topic); ok {
				writeJSON(w, http.StatusOK, c)
				return
			}
		}
		c, ok := deck.Next()
		if !ok {
			writeError(w, http.StatusNotFound, "no card due")
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func handleStats(deck *Deck) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, deck.Stats())
	}
}

func handleRoadmap(deck *Deck) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, deck.Roadmap())
	}
}

func handleReview(deck *Deck, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req card.Review
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.CardFilename == "" {
			writeError(w, http.StatusBadRequest, "card_filename is required")
			return
		}

		err := deck.Review(req.CardFilename, req.Rating)
		switch {
		case errors.Is(err, ErrUnknownCard):
			writeError(w, http.StatusNotFound, err.Error())
			return
		case errors.Is(err, card.ErrInvalidRating):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		log.Info("review recorded", "card", req.CardFilename, "rating", req.Rating.String())
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
