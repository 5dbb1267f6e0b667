package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v82/github"
	"golang.org/x/oauth2"

	deverrors "github.com/NicabarNimble/go-devdir/internal/errors"
	"github.com/NicabarNimble/go-devdir/internal/logger"
	"github.com/NicabarNimble/go-devdir/internal/token"
)

const (
	apiBaseURL = "https://api.github.com/"
	userAgent  = "go-devdir/1.0"

	// MaxPageSize is the largest per_page the search endpoint honours
	MaxPageSize = 100
)

// Options configures a catalog Client
type Options struct {
	// BaseURL overrides the API root, e.g. https://ghe.example.com/api/v3/
	BaseURL string
	// HTTPTimeout bounds the search request. Zero means no timeout.
	HTTPTimeout time.Duration
	Logger      *logger.Logger
}

// Client queries the repository catalog
type Client struct {
	gh     *github.Client
	logger *logger.Logger
}

// NewClient creates a catalog client that authenticates with t as a bearer token
func NewClient(ctx context.Context, t token.Token, opts Options) (*Client, error) {
	if !token.IsValid(t) {
		return nil, token.ErrTokenInvalid
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: t.Value})
	httpClient := oauth2.NewClient(ctx, ts)
	httpClient.Timeout = opts.HTTPTimeout

	gh := github.NewClient(httpClient)
	gh.UserAgent = userAgent

	base := opts.BaseURL
	if base == "" {
		base = apiBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", opts.BaseURL, err)
	}
	gh.BaseURL = u

	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	return &Client{gh: gh, logger: log}, nil
}

// ListRepositories issues a single search-by-owner request for account and
// decodes the response. There is no retry and no follow-up page.
func (c *Client) ListRepositories(ctx context.Context, account string, pageSize int) (*CatalogResult, error) {
	if strings.TrimSpace(account) == "" {
		return nil, errors.New("account must be specified")
	}
	pageSize = ClampPageSize(pageSize)

	query := url.Values{}
	query.Set("q", "user:"+account)
	query.Set("per_page", strconv.Itoa(pageSize))

	req, err := c.gh.NewRequest(http.MethodGet, "search/repositories?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug("querying repository catalog", "account", account, "per_page", pageSize, "url", req.URL.Redacted())

	var raw json.RawMessage
	resp, err := c.gh.Do(ctx, req, &raw)
	if err != nil {
		return nil, queryError(resp, err)
	}

	result, err := DecodeCatalog(raw)
	if err != nil {
		return nil, err
	}

	c.logger.Info("repository catalog received",
		"account", account,
		"total_count", result.TotalCount,
		"returned", len(result.Items),
		"incomplete", result.IncompleteResults)

	return result, nil
}

// ClampPageSize keeps n within 1..MaxPageSize
func ClampPageSize(n int) int {
	switch {
	case n <= 0:
		return MaxPageSize
	case n > MaxPageSize:
		return MaxPageSize
	default:
		return n
	}
}

// queryError converts a failed request into a CatalogQueryError when the
// provider answered, or wraps the transport error otherwise
func queryError(resp *github.Response, err error) error {
	if resp == nil || resp.Response == nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}

	body := readBody(resp.Body)
	if body == "" {
		var ghErr *github.ErrorResponse
		if errors.As(err, &ghErr) {
			body = ghErr.Message
		}
	}

	return &deverrors.CatalogQueryError{
		Status: resp.StatusCode,
		Body:   body,
		Err:    err,
	}
}

func readBody(r io.Reader) string {
	if r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	return string(data)
}
