package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/openmarket/internal/client/models"
	"github.com/dmitrijs2005/openmarket/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	b, api := newBackend(t)
	b.on("GET", "/api/listings/seller/u1", 200, []any{map[string]any{"id": "l1"}})
	b.on("GET", "/api/ratings/seller/u1", 200, []any{map[string]any{"rating": 5}, map[string]any{"rating": 3}})
	svc := NewAccountService(api, signedIn("u1", "ann"), discard())

	p, err := svc.LoadProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ann", p.User.Username)
	assert.Len(t, p.Listings, 1)
	assert.Equal(t, 2, p.RatingCount)
}

func TestLoadProfile_Degrades(t *testing.T) {
	b, api := newBackend(t)
	b.on("GET", "/api/listings/seller/u1", 500, nil)
	b.on("GET", "/api/ratings/seller/u1", 500, nil)
	svc := NewAccountService(api, signedIn("u1", "ann"), discard())

	p, err := svc.LoadProfile(context.Background())
	require.NoError(t, err)
	assert.Empty(t, p.Listings)
	assert.Zero(t, p.RatingCount)

	_, err = NewAccountService(api, anonymous(), discard()).LoadProfile(context.Background())
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestUpdateProfile(t *testing.T) {
	b, api := newBackend(t)
	b.on("PATCH", "/api/users/u1", 200, map[string]any{"id": "u1", "username": "ann2", "bio": "hi"})
	sess := signedIn("u1", "ann")
	svc := NewAccountService(api, sess, discard())

	u, err := svc.UpdateProfile(context.Background(), models.ProfileUpdate{Username: "ann2", Email: "a@example.com", Bio: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ann2", u.Username)
	assert.Equal(t, "ann2", sess.CurrentUser().Username)

	sent := b.body("PATCH", "/api/users/u1")
	assert.Equal(t, "a@example.com", sent["email"])
}

func TestUpdateProfile_MessageOnlyResponse(t *testing.T) {
	b, api := newBackend(t)
	b.on("PATCH", "/api/users/u1", 200, map[string]any{"message": "updated"})
	sess := signedIn("u1", "ann")
	svc := NewAccountService(api, sess, discard())

	u, err := svc.UpdateProfile(context.Background(), models.ProfileUpdate{Username: "ann", Bio: "new"})
	require.NoError(t, err)
	assert.Equal(t, models.ID("u1"), u.ID)
	assert.Equal(t, "new", sess.CurrentUser().Bio)
}

func TestUpdateProfile_Errors(t *testing.T) {
	b, api := newBackend(t)
	b.on("PATCH", "/api/users/u1", 409, map[string]any{"message": "Username taken"})
	sess := signedIn("u1", "ann")
	svc := NewAccountService(api, sess, discard())

	_, err := svc.UpdateProfile(context.Background(), models.ProfileUpdate{Username: "bob"})
	assert.EqualError(t, err, "Username taken")
	assert.Nil(t, sess.LastCachedUser)

	_, err = svc.UpdateProfile(context.Background(), models.ProfileUpdate{})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestUpdateProfile_CacheFailureIsNotFatal(t *testing.T) {
	b, api := newBackend(t)
	b.on("PATCH", "/api/users/u1", 200, map[string]any{"id": "u1", "username": "ann"})
	sess := signedIn("u1", "ann")
	sess.UpdateErr = errors.New("disk full")

	_, err := NewAccountService(api, sess, discard()).UpdateProfile(context.Background(), models.ProfileUpdate{Username: "ann"})
	require.NoError(t, err)
	require.NotNil(t, sess.LastCachedUser)
}

func TestChangePassword(t *testing.T) {
	b, api := newBackend(t)
	b.on("PATCH", "/api/users/u1/password", 200, map[string]any{"message": "Password updated"})
	svc := NewAccountService(api, signedIn("u1", "ann"), discard())
	ctx := context.Background()

	assert.ErrorIs(t, svc.ChangePassword(ctx, "old", "new1", "new2"), ErrPasswordMismatch)
	assert.ErrorIs(t, svc.ChangePassword(ctx, "old", "", ""), common.ErrValidation)
	assert.Zero(t, b.hitCount("PATCH", "/api/users/u1/password"))

	require.NoError(t, svc.ChangePassword(ctx, "old", "new", "new"))
	sent := b.body("PATCH", "/api/users/u1/password")
	assert.Equal(t, "old", sent["currentPassword"])
	assert.Equal(t, "new", sent["newPassword"])
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	b, api := newBackend(t)
	b.on("PATCH", "/api/users/u1/password", 401, map[string]any{"message": "Current password is incorrect"})
	svc := NewAccountService(api, signedIn("u1", "ann"), discard())

	err := svc.ChangePassword(context.Background(), "bad", "new", "new")
	assert.EqualError(t, err, "Current password is incorrect")
}

func TestGetVerified(t *testing.T) {
	b, api := newBackend(t)
	svc := NewAccountService(api, signedIn("u1", "ann"), discard())

	q, err := svc.GetVerified(context.Background(), PaymentPayFast)
	require.NoError(t, err)
	assert.Equal(t, VerificationFee, q.Fee)
	assert.Contains(t, q.Message, "PayFast")

	_, err = svc.GetVerified(context.Background(), "bitcoin")
	assert.ErrorIs(t, err, ErrUnsupportedPayment)

	_, err = NewAccountService(api, anonymous(), discard()).GetVerified(context.Background(), PaymentOzow)
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)

	b.mu.Lock()
	assert.Empty(t, b.hits)
	b.mu.Unlock()
}
