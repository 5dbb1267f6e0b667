package errors

import (
	"fmt"
	"net/http"
	"strings"
)

const maxBodyInMessage = 200

// CatalogQueryError is returned when the repository search endpoint
// answers with a non-success HTTP status
type CatalogQueryError struct {
	Status int    // HTTP status code
	Body   string // Raw response body
	Err    error  // Underlying transport or client error
}

func (e *CatalogQueryError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > maxBodyInMessage {
		body = body[:maxBodyInMessage] + "..."
	}
	if body == "" {
		return fmt.Sprintf("catalog query failed (HTTP %d)", e.Status)
	}
	return fmt.Sprintf("catalog query failed (HTTP %d): %s", e.Status, body)
}

func (e *CatalogQueryError) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether the query was rejected for bad credentials
func (e *CatalogQueryError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// CatalogParseError is returned when the search response does not match the
// expected schema. Index is -1 for envelope fields.
type CatalogParseError struct {
	Index int
	Field string
	Err   error
}

func (e *CatalogParseError) Error() string {
	var where string
	if e.Index < 0 {
		where = fmt.Sprintf("field %q", e.Field)
	} else {
		where = fmt.Sprintf("items[%d].%s", e.Index, e.Field)
	}
	if e.Err == nil {
		return fmt.Sprintf("catalog parse failed: %s", where)
	}
	return fmt.Sprintf("catalog parse failed: %s: %v", where, e.Err)
}

func (e *CatalogParseError) Unwrap() error {
	return e.Err
}

// DestinationError is returned when an existing destination cannot be removed
// or the fresh directory cannot be created
type DestinationError struct {
	Path   string
	Action string // "remove" or "create"
	Err    error
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("failed to %s destination %q: %v", e.Action, e.Path, e.Err)
}

func (e *DestinationError) Unwrap() error {
	return e.Err
}

// CloneError records a single repository that failed to clone.
// It never aborts the run.
type CloneError struct {
	Name string
	Err  error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("clone %s: %v", e.Name, e.Err)
}

func (e *CloneError) Unwrap() error {
	return e.Err
}
