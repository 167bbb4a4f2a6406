package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/openmarket/internal/client/client"
	"github.com/dmitrijs2005/openmarket/internal/client/models"
	"github.com/dmitrijs2005/openmarket/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeFixture(b *backend) {
	b.on("GET", "/api/users/username/sam", 200, map[string]any{"id": "s1", "username": "sam", "verified": true})
	b.on("GET", "/api/listings/seller/s1", 200, map[string]any{"list": []any{
		map[string]any{"id": "l1", "title": "Bike"},
		map[string]any{"id": "l2", "title": "Lamp"},
	}})
	b.on("GET", "/api/ratings/seller/s1", 200, []any{
		map[string]any{"id": "r1", "rating": 5}, map[string]any{"id": "r2", "rating": 4},
	})
}

func TestLoadStore(t *testing.T) {
	b, api := newBackend(t)
	storeFixture(b)
	b.on("GET", "/api/ratings/check/seller", 200, nil)
	svc := NewStoreService(api, signedIn("u1", "ann"), discard())

	v, err := svc.LoadStore(NewScope(context.Background()), "sam")
	require.NoError(t, err)

	s := v.Snapshot()
	assert.Equal(t, "sam", s.Seller.Username)
	require.Len(t, s.Listings, 2)
	for _, l := range s.Listings {
		require.NotNil(t, l.Seller)
		assert.Equal(t, "sam", l.Seller.Username)
	}
	// no server score, so the client average is used
	assert.InDelta(t, 4.5, s.Summary.Average, 1e-9)
	assert.Equal(t, 2, s.Summary.Count)
	assert.False(t, s.OwnStore)
	assert.True(t, v.CanRate())
	assert.Equal(t, "fromUserId=u1&toUserId=s1", b.query("GET", "/api/ratings/check/seller"))
}

func TestLoadStore_UnknownSeller(t *testing.T) {
	b, api := newBackend(t)
	b.on("GET", "/api/users/username/ghost", 404, map[string]any{"message": "User not found"})
	svc := NewStoreService(api, anonymous(), discard())

	_, err := svc.LoadStore(NewScope(context.Background()), "ghost")
	assert.ErrorIs(t, err, client.ErrNotFound)
	assert.Contains(t, err.Error(), "User not found")
}

func TestLoadStore_DegradesAndSkipsCheckForOwnStore(t *testing.T) {
	b, api := newBackend(t)
	b.on("GET", "/api/users/username/sam", 200, map[string]any{"id": "s1", "username": "sam"})
	b.on("GET", "/api/listings/seller/s1", 500, nil)
	b.on("GET", "/api/ratings/seller/s1", 500, nil)
	svc := NewStoreService(api, signedIn("s1", "sam"), discard())

	v, err := svc.LoadStore(NewScope(context.Background()), "sam")
	require.NoError(t, err)

	s := v.Snapshot()
	assert.Empty(t, s.Listings)
	assert.Empty(t, s.Ratings)
	assert.True(t, s.OwnStore)
	assert.False(t, v.CanRate())
	assert.Zero(t, b.hitCount("GET", "/api/ratings/check/seller"))

	_, err = v.SubmitRating(context.Background(), 5, "")
	assert.ErrorIs(t, err, ErrSelfRating)
}

func TestStoreSubmitRating(t *testing.T) {
	b, api := newBackend(t)
	storeFixture(b)
	b.on("GET", "/api/ratings/check/seller", 200, nil)
	b.on("POST", "/api/ratings", 201, map[string]any{"id": "r3", "rating": 3, "type": "seller", "toUserId": "s1"})
	svc := NewStoreService(api, signedIn("u1", "ann"), discard())

	v, err := svc.LoadStore(NewScope(context.Background()), "sam")
	require.NoError(t, err)

	_, err = v.SubmitRating(context.Background(), 9, "")
	assert.ErrorIs(t, err, common.ErrValidation)

	r, err := v.SubmitRating(context.Background(), 3, "ok")
	require.NoError(t, err)
	assert.Equal(t, "ann", r.FromUsername)
	assert.Equal(t, models.RatingSeller, r.Type)
	assert.Equal(t, "s1", b.body("POST", "/api/ratings")["toUserId"])

	s := v.Snapshot()
	require.Len(t, s.Ratings, 3)
	assert.True(t, s.Rated)
	assert.InDelta(t, 4.0, s.Summary.Average, 1e-9)

	_, err = v.SubmitRating(context.Background(), 3, "again")
	assert.ErrorIs(t, err, ErrAlreadyRated)
	assert.Equal(t, 1, b.hitCount("POST", "/api/ratings"))
}

func TestStoreSubmitRating_Anonymous(t *testing.T) {
	b, api := newBackend(t)
	storeFixture(b)
	v, err := NewStoreService(api, anonymous(), discard()).LoadStore(NewScope(context.Background()), "sam")
	require.NoError(t, err)

	_, err = v.SubmitRating(context.Background(), 5, "")
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)
	assert.False(t, v.CanRate())
}
