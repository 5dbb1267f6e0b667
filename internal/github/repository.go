package github

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	deverrors "github.com/NicabarNimble/go-devdir/internal/errors"
)

var (
	// ErrMissingField indicates a required key is absent from the response
	ErrMissingField = errors.New("missing required field")

	// ErrNullField indicates a non-nullable key is present but null
	ErrNullField = errors.New("field must not be null")
)

// RepositoryRecord is one repository as reported by the search endpoint.
// Values are read-only after decoding.
type RepositoryRecord struct {
	ID            int64
	Name          string
	Private       bool
	CloneURL      string // html_url
	Description   *string
	Fork          bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	PushedAt      time.Time
	SizeKB        int64
	Language      *string
	DefaultBranch string
}

// DescriptionOr returns the description or def when it is null
func (r RepositoryRecord) DescriptionOr(def string) string {
	if r.Description == nil {
		return def
	}
	return *r.Description
}

// LanguageOr returns the primary language or def when it is null
func (r RepositoryRecord) LanguageOr(def string) string {
	if r.Language == nil {
		return def
	}
	return *r.Language
}

// SizeBytes converts the reported size from kilobytes to bytes
func (r RepositoryRecord) SizeBytes() uint64 {
	if r.SizeKB <= 0 {
		return 0
	}
	return uint64(r.SizeKB) * 1024
}

// CatalogResult is the search response envelope. Items keep provider order.
type CatalogResult struct {
	TotalCount        int
	IncompleteResults bool
	Items             []RepositoryRecord
}

// Truncated reports whether the provider knows of more repositories than
// were returned, either because the result was incomplete or because the
// page size cut it short
func (c *CatalogResult) Truncated() bool {
	return c.IncompleteResults || c.TotalCount > len(c.Items)
}

type fieldSpec struct {
	name     string
	nullable bool
	target   func(r *RepositoryRecord) any
}

var recordSchema = []fieldSpec{
	{"id", false, func(r *RepositoryRecord) any { return &r.ID }},
	{"name", false, func(r *RepositoryRecord) any { return &r.Name }},
	{"private", false, func(r *RepositoryRecord) any { return &r.Private }},
	{"html_url", false, func(r *RepositoryRecord) any { return &r.CloneURL }},
	{"description", true, func(r *RepositoryRecord) any { return &r.Description }},
	{"fork", false, func(r *RepositoryRecord) any { return &r.Fork }},
	{"created_at", false, func(r *RepositoryRecord) any { return &r.CreatedAt }},
	{"updated_at", false, func(r *RepositoryRecord) any { return &r.UpdatedAt }},
	{"pushed_at", false, func(r *RepositoryRecord) any { return &r.PushedAt }},
	{"size", false, func(r *RepositoryRecord) any { return &r.SizeKB }},
	{"language", true, func(r *RepositoryRecord) any { return &r.Language }},
	{"default_branch", false, func(r *RepositoryRecord) any { return &r.DefaultBranch }},
}

// DecodeCatalog parses a search response body. It either returns every item
// or fails with a *errors.CatalogParseError naming the first offending field.
func DecodeCatalog(data []byte) (*CatalogResult, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &deverrors.CatalogParseError{Index: -1, Field: "body", Err: err}
	}

	result := &CatalogResult{}
	if err := decodeField(envelope, -1, "total_count", false, &result.TotalCount); err != nil {
		return nil, err
	}
	if err := decodeField(envelope, -1, "incomplete_results", false, &result.IncompleteResults); err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := decodeField(envelope, -1, "items", false, &items); err != nil {
		return nil, err
	}

	result.Items = make([]RepositoryRecord, 0, len(items))
	for i, raw := range items {
		record, err := decodeRecord(i, raw)
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, record)
	}

	return result, nil
}

func decodeRecord(index int, raw json.RawMessage) (RepositoryRecord, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return RepositoryRecord{}, &deverrors.CatalogParseError{Index: index, Field: "(item)", Err: err}
	}
	if obj == nil {
		return RepositoryRecord{}, &deverrors.CatalogParseError{Index: index, Field: "(item)", Err: ErrNullField}
	}

	var record RepositoryRecord
	for _, f := range recordSchema {
		if err := decodeField(obj, index, f.name, f.nullable, f.target(&record)); err != nil {
			return RepositoryRecord{}, err
		}
	}
	return record, nil
}

func decodeField(obj map[string]json.RawMessage, index int, name string, nullable bool, dst any) error {
	raw, ok := obj[name]
	if !ok {
		return &deverrors.CatalogParseError{Index: index, Field: name, Err: ErrMissingField}
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		if nullable {
			return nil
		}
		return &deverrors.CatalogParseError{Index: index, Field: name, Err: ErrNullField}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &deverrors.CatalogParseError{Index: index, Field: name, Err: err}
	}
	return nil
}
