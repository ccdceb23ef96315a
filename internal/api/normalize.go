package api

import (
	"context"

	"github.com/goccy/go-json"
)

// NormalizeList decodes a list endpoint body into a slice of T. The backend
// is inconsistent about list shapes: some endpoints return a bare array,
// others wrap it as {"<key>": [...]}. Both are accepted here so downstream
// code only ever sees one shape. A wrapped payload whose key is missing
// yields an empty list, not an error, because several endpoints omit the key
// entirely when there are no rows.
func NormalizeList[T any](body []byte, key string) ([]T, error) {
	// Bare array first: the most common shape.
	var bare []T
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, newParseError("lista in un formato sconosciuto", err)
	}

	raw, ok := wrapped[key]
	if !ok {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, newParseError("lista in un formato sconosciuto", err)
	}
	return items, nil
}

// fetchList GETs a list endpoint and normalizes its shape.
func fetchList[T any](ctx context.Context, c *Client, path, key string) ([]T, error) {
	body, err := c.GetRaw(ctx, path)
	if err != nil {
		return nil, err
	}
	return NormalizeList[T](body, key)
}
