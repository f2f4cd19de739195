package store

import (
	"testing"
	"time"

	"sharebox/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelete_RequestThenConfirm(t *testing.T) {
	env := newEmptyStore(t)
	s := env.store
	keep := s.AddProduct(models.NewProduct{Title: "Keep"})
	drop := s.AddProduct(models.NewProduct{Title: "Drop"})

	calls := 0
	s.Subscribe(func() { calls++ })

	token, ok := s.RequestDelete(drop.ID)
	require.True(t, ok)
	require.NotEmpty(t, token)
	assert.Len(t, s.Products(), 2, "requesting does not delete")
	assert.Equal(t, 0, calls, "requesting does not notify")

	expiry, ok := s.DeleteExpiry(token)
	require.True(t, ok)
	assert.True(t, expiry.After(env.clock.Now()))

	assert.True(t, s.ConfirmDelete(token))
	assert.Equal(t, []string{keep.ID}, ids(s.Products()))
	assert.Equal(t, 1, calls)
	assert.Equal(t, toastMsg{models.SeverityInfo, "Product deleted"}, env.toaster.last())
	assert.NotContains(t, env.saved(t, KeyProducts), drop.ID)

	assert.False(t, s.ConfirmDelete(token), "a token confirms at most once")
	_, ok = s.DeleteExpiry(token)
	assert.False(t, ok)
}

func TestDelete_UnknownProduct(t *testing.T) {
	env := newEmptyStore(t)
	token, ok := env.store.RequestDelete("missing")
	assert.False(t, ok)
	assert.Empty(t, token)
}

func TestDelete_Expired(t *testing.T) {
	env := newEmptyStore(t)
	s := env.store
	p := s.AddProduct(models.NewProduct{Title: "Lamp"})

	token, ok := s.RequestDelete(p.ID)
	require.True(t, ok)

	env.clock.Advance(6 * time.Minute)
	assert.False(t, s.ConfirmDelete(token))
	assert.Len(t, s.Products(), 1)
}

func TestDelete_Cancel(t *testing.T) {
	env := newEmptyStore(t)
	s := env.store
	p := s.AddProduct(models.NewProduct{Title: "Lamp"})

	token, ok := s.RequestDelete(p.ID)
	require.True(t, ok)

	assert.True(t, s.CancelDelete(token))
	assert.False(t, s.CancelDelete(token), "already cancelled")
	assert.False(t, s.ConfirmDelete(token))
	assert.Len(t, s.Products(), 1)
}

func TestDelete_ProductGoneBeforeConfirm(t *testing.T) {
	env := newEmptyStore(t)
	s := env.store
	p := s.AddProduct(models.NewProduct{Title: "Lamp"})

	first, ok := s.RequestDelete(p.ID)
	require.True(t, ok)
	second, ok := s.RequestDelete(p.ID)
	require.True(t, ok)
	assert.NotEqual(t, first, second)

	assert.True(t, s.ConfirmDelete(first))
	assert.False(t, s.ConfirmDelete(second), "nothing left to delete")
}

func TestDelete_RejectsForeignTokens(t *testing.T) {
	env := newEmptyStore(t)
	s := env.store
	p := s.AddProduct(models.NewProduct{Title: "Lamp"})
	_, ok := s.RequestDelete(p.ID)
	require.True(t, ok)

	claims := &deleteClaims{
		ProductID: p.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "forged",
			Issuer:    deleteTokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some other key"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"Empty", ""},
		{"Garbage", "not.a.token"},
		{"Wrong key", forged},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, s.ConfirmDelete(tt.token))
			assert.False(t, s.CancelDelete(tt.token))
		})
	}
	assert.Len(t, s.Products(), 1)
}

func TestDeleteConfirmations_IssueSweepsExpired(t *testing.T) {
	d := newDeleteConfirmations(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, _, err := d.issue("a", now)
	require.NoError(t, err)
	_, _, err = d.issue("b", now.Add(2*time.Minute))
	require.NoError(t, err)

	assert.Len(t, d.pending, 1, "the expired token for a is swept")
}
