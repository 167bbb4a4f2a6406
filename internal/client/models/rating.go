package models

import "time"

// RatingType is the rating dimension.
type RatingType string

const (
	RatingProduct RatingType = "product"
	RatingSeller  RatingType = "seller"
)

// Rating is an append-only review record. Depending on the dimension the
// target is carried in ProductID or ToUserID (some backends also send
// TargetID).
type Rating struct {
	ID           ID         `json:"id"`
	Type         RatingType `json:"type,omitempty"`
	FromUserID   ID         `json:"fromUserId,omitempty"`
	FromUsername string     `json:"fromUsername,omitempty"`
	ToUserID     ID         `json:"toUserId,omitempty"`
	ProductID    ID         `json:"productId,omitempty"`
	TargetID     ID         `json:"targetId,omitempty"`
	Rating       int        `json:"rating"`
	Comment      string     `json:"comment,omitempty"`
	Date         string     `json:"date,omitempty"`
}

// Target returns the rated entity id.
func (r *Rating) Target() ID {
	switch {
	case r.TargetID != "":
		return r.TargetID
	case r.Type == RatingProduct && r.ProductID != "":
		return r.ProductID
	case r.ToUserID != "":
		return r.ToUserID
	default:
		return r.ProductID
	}
}

// When parses Date; ok is false when it is empty or not RFC 3339.
func (r *Rating) When() (t time.Time, ok bool) {
	if r.Date == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, r.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// RatingSubmission is the POST /ratings body.
type RatingSubmission struct {
	Type      RatingType `json:"type"`
	ProductID ID         `json:"productId,omitempty"`
	ToUserID  ID         `json:"toUserId,omitempty"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment,omitempty"`
}

// RatingAverage is the body of /ratings/average/seller/:id.
type RatingAverage struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
