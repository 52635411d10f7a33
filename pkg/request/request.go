package request

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"corneradvisor/store"
)

const maxJSONBodySize = 1 << 20

var ErrBodyTooLarge = errors.New("request body too large")

// Document reads the body as a single JSON object. An empty body decodes
// to an empty document.
func Document(w http.ResponseWriter, r *http.Request) (store.Document, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBodySize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, ErrBodyTooLarge
		}
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return store.Document{}, nil
	}

	var doc store.Document
	if err := doc.UnmarshalJSON(body); err != nil {
		return nil, err
	}
	return doc, nil
}

// Status maps a Document error to the HTTP status to answer with.
func Status(err error) int {
	if errors.Is(err, ErrBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
