package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScope_ApplyUntilClosed(t *testing.T) {
	s := NewScope(context.Background())
	n := 0

	require.True(t, s.Apply(func() { n++ }))
	assert.False(t, s.Closed())

	s.Close()
	assert.True(t, s.Closed())
	assert.False(t, s.Apply(func() { n++ }))
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, s.Context().Err(), context.Canceled)

	s.Close()
}

func TestScope_ParentCancellation(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	s := NewScope(parent)
	cancel()
	<-s.Context().Done()

	// a cancelled parent stops requests but the view state is still writable
	assert.True(t, s.Apply(func() {}))
}
