package model

import (
	"encoding/json"
	"math"
)

// MaxRating is the top of the session rating scale.
const MaxRating = 10

// Rating is an optional session score in (0, MaxRating]. The zero value is an
// empty rating, so records that were never scored stay out of averages.
type Rating struct {
	value float64
	ok    bool
}

// NewRating returns a set rating for v, or an empty one when v is zero,
// negative, above MaxRating, NaN or infinite.
func NewRating(v float64) Rating {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || v > MaxRating {
		return Rating{}
	}
	return Rating{value: v, ok: true}
}

// RatingFromPtr converts a nullable stored number into a Rating.
func RatingFromPtr(v *float64) Rating {
	if v == nil {
		return Rating{}
	}
	return NewRating(*v)
}

// Value returns the score and whether one is set.
func (r Rating) Value() (float64, bool) {
	return r.value, r.ok
}

// Valid reports whether the rating holds a score.
func (r Rating) Valid() bool {
	return r.ok
}

func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.ok {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

func (r *Rating) UnmarshalJSON(data []byte) error {
	var v *float64
	if err := json.Unmarshal(data, &v); err != nil {
		// Non-numeric ratings are treated as unset rather than rejecting the record.
		*r = Rating{}
		return nil
	}
	*r = RatingFromPtr(v)
	return nil
}
