// Package ratings derives display summaries from rating collections.
package ratings

import (
	"fmt"

	"github.com/dmitrijs2005/openmarket/internal/client/models"
	"github.com/dmitrijs2005/openmarket/internal/common"
)

const (
	MinScore = 1
	MaxScore = 5
)

// Summary is the arithmetic mean of a collection and its size.
type Summary struct {
	Average float64
	Count   int
}

// Aggregate averages the given ratings. An empty collection yields 0/0.
func Aggregate(rs []models.Rating) Summary {
	if len(rs) == 0 {
		return Summary{}
	}
	sum := 0
	for _, r := range rs {
		sum += r.Rating
	}
	return Summary{Average: float64(sum) / float64(len(rs)), Count: len(rs)}
}

// SellerScore is the seller's displayed score. The server's seller.rating
// wins when present; otherwise it is computed from rs. Count is always
// len(rs).
func SellerScore(seller *models.User, rs []models.Rating) Summary {
	s := Aggregate(rs)
	if seller != nil && seller.Rating != nil {
		s.Average = *seller.Rating
	}
	return s
}

var labels = [...]string{"", "Poor", "Fair", "Good", "Very Good", "Excellent"}

// Label names a score; out of range scores have no label.
func Label(score int) string {
	if score < MinScore || score > MaxScore {
		return ""
	}
	return labels[score]
}

// Validate accepts integer scores from 1 to 5.
func Validate(score int) error {
	if score < MinScore || score > MaxScore {
		return fmt.Errorf("%w: rating must be between %d and %d, got %d", common.ErrValidation, MinScore, MaxScore, score)
	}
	return nil
}
