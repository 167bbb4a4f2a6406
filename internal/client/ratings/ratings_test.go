package ratings

import (
	"testing"

	"github.com/dmitrijs2005/openmarket/internal/client/models"
	"github.com/dmitrijs2005/openmarket/internal/common"
	"github.com/stretchr/testify/assert"
)

func scores(vals ...int) []models.Rating {
	out := make([]models.Rating, len(vals))
	for i, v := range vals {
		out[i] = models.Rating{Rating: v}
	}
	return out
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name string
		in   []models.Rating
		want Summary
	}{
		{"empty", nil, Summary{}},
		{"mean", scores(4, 5, 3), Summary{Average: 4, Count: 3}},
		{"fraction", scores(5, 4), Summary{Average: 4.5, Count: 2}},
		{"single", scores(1), Summary{Average: 1, Count: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.in)
			assert.Equal(t, tt.want.Count, got.Count)
			assert.InDelta(t, tt.want.Average, got.Average, 1e-9)
		})
	}
}

func TestSellerScore(t *testing.T) {
	server := 3.2
	rs := scores(5, 5)

	got := SellerScore(&models.User{Rating: &server}, rs)
	assert.InDelta(t, 3.2, got.Average, 1e-9)
	assert.Equal(t, 2, got.Count)

	got = SellerScore(&models.User{}, rs)
	assert.InDelta(t, 5.0, got.Average, 1e-9)

	got = SellerScore(nil, nil)
	assert.Equal(t, Summary{}, got)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Poor", Label(1))
	assert.Equal(t, "Fair", Label(2))
	assert.Equal(t, "Good", Label(3))
	assert.Equal(t, "Very Good", Label(4))
	assert.Equal(t, "Excellent", Label(5))
	assert.Empty(t, Label(0))
	assert.Empty(t, Label(6))
}

func TestValidate(t *testing.T) {
	for i := 1; i <= 5; i++ {
		assert.NoError(t, Validate(i))
	}
	assert.ErrorIs(t, Validate(0), common.ErrValidation)
	assert.ErrorIs(t, Validate(6), common.ErrValidation)
	assert.ErrorIs(t, Validate(-1), common.ErrValidation)
}
