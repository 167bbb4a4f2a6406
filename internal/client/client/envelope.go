package client

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/openmarket/internal/client/models"
	"github.com/tidwall/gjson"
)

// The backend is not consistent about response shapes. Each decoder below
// accepts every shape seen in practice and always yields a typed value.

// decodeList accepts a bare array or {"list": [...]}. Anything else is an
// empty list.
func decodeList[T any](raw []byte) ([]T, error) {
	items := make([]T, 0)
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return items, nil
	}
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidResponse
	}

	doc := gjson.ParseBytes(raw)
	if doc.IsObject() {
		doc = doc.Get("list")
	}
	if !doc.IsArray() {
		return items, nil
	}
	if err := json.Unmarshal([]byte(doc.Raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return items, nil
}

// decodeUpload accepts {"urls": [...]} or {"url": "..."}.
func decodeUpload(raw []byte) ([]string, error) {
	urls := make([]string, 0)
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return urls, nil
	}
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidResponse
	}

	doc := gjson.ParseBytes(raw)
	if list := doc.Get("urls"); list.IsArray() {
		for _, u := range list.Array() {
			if s := u.String(); s != "" {
				urls = append(urls, s)
			}
		}
		return urls, nil
	}
	if single := doc.Get("url"); single.Type == gjson.String && single.Str != "" {
		urls = append(urls, single.Str)
	}
	return urls, nil
}

// decodeCheck maps a rating-check response to the existing rating, or nil
// for null, false, an empty body, an empty object or {"rated": false}. Any
// other body means the rating exists; its fields are filled from the body or
// its "rating"/"data" object when they decode, and left zero otherwise.
func decodeCheck(raw []byte) (*models.Rating, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(raw) {
		return &models.Rating{}, nil
	}

	doc := gjson.ParseBytes(raw)
	switch {
	case doc.IsArray():
		items := doc.Array()
		if len(items) == 0 {
			return nil, nil
		}
		doc = items[0]
	case doc.IsObject():
		if len(doc.Map()) == 0 {
			return nil, nil
		}
		rated := doc.Get("rated")
		if rated.Exists() && !rated.Bool() {
			return nil, nil
		}
		for _, key := range []string{"rating", "data"} {
			inner := doc.Get(key)
			if inner.IsObject() {
				doc = inner
				break
			}
			if !rated.Exists() && !doc.Get("id").Exists() && inner.Exists() && !inner.Bool() && inner.Type != gjson.Number {
				return nil, nil
			}
		}
	default:
		if !doc.Bool() && doc.Type != gjson.String {
			return nil, nil
		}
		if doc.Type == gjson.String && doc.Str == "" {
			return nil, nil
		}
		return &models.Rating{}, nil
	}

	var r models.Rating
	if doc.IsObject() {
		if err := json.Unmarshal([]byte(doc.Raw), &r); err != nil {
			return &models.Rating{}, nil
		}
	}
	return &r, nil
}

// decodeUser accepts a bare user or {"user": {...}}.
func decodeUser(raw []byte) (*models.User, error) {
	raw = bytes.TrimSpace(raw)
	if gjson.ValidBytes(raw) {
		doc := gjson.ParseBytes(raw)
		if inner := doc.Get("user"); inner.IsObject() && !doc.Get("id").Exists() {
			raw = []byte(inner.Raw)
		}
	}

	var u models.User
	if err := decodeBody(raw, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
