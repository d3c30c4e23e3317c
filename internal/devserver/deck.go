// Package devserver is an in-memory card backend for local development.
// It serves JSON cards from a directory and schedules them with a simple
// review queue.
package devserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/abhisek/battlecard/internal/card"
)

// ErrUnknownCard is returned when a review names a card the deck never served.
var ErrUnknownCard = errors.New("unknown card")

// Review intervals in days per rating.
var ratingIntervals = map[card.Rating]int{
	card.Again: 0,
	card.Hard:  1,
	card.Good:  3,
	card.Easy:  7,
}

// Deck holds the cards and the queue of cards still due.
type Deck struct {
	mu       sync.Mutex
	cards    map[string]*card.Card
	order    []string
	queue    []string
	levels   map[string]card.Level
	interval map[string]int
	daysLeft int
}

// NewDeck builds a deck from cards in the given order. Every card starts due.
func NewDeck(cards []*card.Card, daysLeft int) *Deck {
	d := &Deck{
		cards:    make(map[string]*card.Card, len(cards)),
		levels:   make(map[string]card.Level, len(cards)),
		interval: make(map[string]int, len(cards)),
		daysLeft: daysLeft,
	}
	for _, c := range cards {
		if _, dup := d.cards[c.Filename]; dup {
			continue
		}
		d.cards[c.Filename] = c
		d.order = append(d.order, c.Filename)
		d.queue = append(d.queue, c.Filename)
		d.levels[c.Filename] = card.LevelPending
	}
	return d
}

// LoadDir reads every *.json file in dir as a card. A card without a
// filename is named after its file.
func LoadDir(dir string, daysLeft int) (*Deck, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	cards := make([]*card.Card, 0, len(paths))
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		raw, err = withFilename(raw, strings.TrimSuffix(filepath.Base(p), ".json"))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		c, err := card.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", p, err)
		}
		cards = append(cards, c)
	}
	return NewDeck(cards, daysLeft), nil
}

// withFilename fills in a missing or blank filename field.
func withFilename(raw []byte, name string) ([]byte, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("card is not an object")
	}
	if f, _ := doc["filename"].(string); strings.TrimSpace(f) != "" {
		return raw, nil
	}
	doc["filename"] = name
	return json.Marshal(doc)
}

// Next returns the card at the head of the queue.
func (d *Deck) Next() (*card.Card, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.queue) == 0 {
		return nil, false
	}
	return d.cards[d.queue[0]], true
}

// ByTopic returns the card whose topic equals topic, falling back to the
// first card in load order whose topic contains it, ignoring case.
func (d *Deck) ByTopic(topic string) (*card.Card, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, f := range d.order {
		if d.cards[f].Topic == topic {
			return d.cards[f], true
		}
	}
	needle := strings.ToLower(topic)
	for _, f := range d.order {
		if strings.Contains(strings.ToLower(d.cards[f].Topic), needle) {
			return d.cards[f], true
		}
	}
	return nil, false
}

// Review applies a rating. Again sends the card to the back of the queue;
// any other rating retires it.
func (d *Deck) Review(filename string, rating card.Rating) error {
	if !rating.IsValid() {
		return fmt.Errorf("%w: %d", card.ErrInvalidRating, int(rating))
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.cards[filename]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCard, filename)
	}

	d.removeFromQueue(filename)
	d.interval[filename] = ratingIntervals[rating]
	switch rating {
	case card.Again:
		d.queue = append(d.queue, filename)
		d.levels[filename] = card.LevelUrgent
	case card.Hard:
		d.levels[filename] = card.LevelLearning
	case card.Good:
		d.levels[filename] = card.LevelFresh
	case card.Easy:
		d.levels[filename] = card.LevelMastered
	}
	return nil
}

func (d *Deck) removeFromQueue(filename string) {
	for i, f := range d.queue {
		if f == filename {
			d.queue = append(d.queue[:i], d.queue[i+1:]...)
			return
		}
	}
}

// Stats summarises the deck.
func (d *Deck) Stats() card.Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return card.Stats{
		Generated:  len(d.cards),
		Total:      len(d.cards),
		DueReviews: len(d.queue),
		DaysLeft:   d.daysLeft,
	}
}

// Roadmap lists every card in load order with its current level.
func (d *Deck) Roadmap() []card.RoadmapItem {
	d.mu.Lock()
	defer d.mu.Unlock()
	items := make([]card.RoadmapItem, 0, len(d.order))
	for i, f := range d.order {
		items = append(items, card.RoadmapItem{
			ID:       i + 1,
			Title:    d.cards[f].Topic,
			Level:    d.levels[f],
			Interval: d.interval[f],
		})
	}
	return items
}
