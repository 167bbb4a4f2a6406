package client

import (
	"testing"

	"github.com/dmitrijs2005/openmarket/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeList(t *testing.T) {
	cases := map[string]int{
		`[{"id":1},{"id":2}]`:   2,
		`{"list":[{"id":1}]}`:   1,
		`{"list":null}`:         0,
		`{"items":[{"id":1}]}`:  0,
		`null`:                  0,
		``:                      0,
		`"oops"`:                0,
	}
	for body, want := range cases {
		got, err := decodeList[models.Listing]([]byte(body))
		require.NoError(t, err, body)
		assert.NotNil(t, got, body)
		assert.Len(t, got, want, body)
	}

	_, err := decodeList[models.Listing]([]byte(`{broken`))
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestDecodeUpload(t *testing.T) {
	got, err := decodeUpload([]byte(`{"urls":["a","b"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	got, err = decodeUpload([]byte(`{"url":"a"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)

	got, err = decodeUpload([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeCheck(t *testing.T) {
	for _, body := range []string{``, `null`, `false`, `0`, `""`, `[]`, `{}`, `{"rated":false}`, `{"data":null}`} {
		r, err := decodeCheck([]byte(body))
		require.NoError(t, err, body)
		assert.Nil(t, r, body)
	}

	cases := []struct {
		body  string
		score int
	}{
		{`{"id":"r1","rating":4}`, 4},
		{`{"rated":true,"rating":{"id":"r1","rating":4}}`, 4},
		{`{"data":{"id":"r2","rating":2}}`, 2},
		{`[{"id":"r3","rating":5}]`, 5},
		{`{"rated":true}`, 0},
		{`{"rated":true,"rating":null}`, 0},
		{`true`, 0},
		{`1`, 0},
		{`"yes"`, 0},
		{`{"id":"r4","rating":"four"}`, 0},
		{`<html>ok</html>`, 0},
	}
	for _, tc := range cases {
		r, err := decodeCheck([]byte(tc.body))
		require.NoError(t, err, tc.body)
		require.NotNil(t, r, tc.body)
		assert.Equal(t, tc.score, r.Rating, tc.body)
	}
}

func TestResolveImageURL(t *testing.T) {
	const base = "https://api.example.com/api"
	cases := []struct {
		base, in, want string
	}{
		{base, "http://localhost:10000/uploads/x.png?v=1", "https://api.example.com/uploads/x.png"},
		{base, "https://localhost/uploads/y.png", "https://api.example.com/uploads/y.png"},
		{base, "/uploads/z.png", "https://api.example.com/uploads/z.png"},
		{base, "https://cdn.example.com/z.png", "https://cdn.example.com/z.png"},
		{base, "data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
		{base, "", ""},
		{"", "/uploads/z.png", "/uploads/z.png"},
		{"/api", "/uploads/z.png", "/uploads/z.png"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ResolveImageURL(tc.base, tc.in), tc.in)
	}
}
