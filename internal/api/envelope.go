package api

import (
	"bytes"
	"encoding/json"

	"github.com/Meerdlawar/SweetDive/internal/domain"
)

// listEnvelope is the paginated list shape {results, count}. List endpoints
// may instead return a bare array; decodeList supports both.
type listEnvelope[T any] struct {
	Results []T  `json:"results"`
	Count   *int `json:"count"`
}

// decodeList decodes a list response body. A bare array yields counted=false,
// which callers must treat as a single page.
func decodeList[T any](op string, raw []byte) (items []T, count int, counted bool, err error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, 0, false, domain.Wrap(err, domain.EINTERNAL, op, "Unexpected response from the server.")
		}
		return items, 0, false, nil
	}

	var env listEnvelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, 0, false, domain.Wrap(err, domain.EINTERNAL, op, "Unexpected response from the server.")
	}
	if env.Count == nil {
		return env.Results, 0, false, nil
	}
	return env.Results, *env.Count, true, nil
}
