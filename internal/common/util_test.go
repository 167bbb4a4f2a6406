package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWipeByteArray(t *testing.T) {
	pw := []byte("hunter2")
	WipeByteArray(pw)
	assert.Equal(t, make([]byte, 7), pw)

	confirm := []byte("hunter2")[:0]
	WipeByteArray(confirm)
	assert.Empty(t, confirm)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}
