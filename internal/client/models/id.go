// Package models defines the marketplace entities exchanged with the API.
//
// Values are owned by the backend; the client keeps short-lived copies that
// are re-fetched per view.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an entity identifier. The API may send ids as JSON strings or
// numbers; both decode to the same textual form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }
