package card

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidRating is returned for ratings outside Again..Easy.
var ErrInvalidRating = errors.New("invalid rating")

// Rating is the ordinal recall assessment submitted per card.
// It travels on the wire as its integer value.
type Rating int

const (
	Again Rating = iota + 1
	Hard
	Good
	Easy
)

var ratingNames = [...]string{Again: "Again", Hard: "Hard", Good: "Good", Easy: "Easy"}

// AllRatings lists the ratings in ordinal order.
func AllRatings() []Rating {
	return []Rating{Again, Hard, Good, Easy}
}

func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// IsValid reports whether r is Again through Easy.
func (r Rating) IsValid() bool {
	return r >= Again && r <= Easy
}

// ParseRating parses "1".."4" or a rating name.
func ParseRating(s string) (Rating, error) {
	if n, err := strconv.Atoi(s); err == nil {
		r := Rating(n)
		if !r.IsValid() {
			return 0, fmt.Errorf("%w: %d", ErrInvalidRating, n)
		}
		return r, nil
	}
	for r := Again; r <= Easy; r++ {
		if ratingNames[r] == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRating, s)
}
