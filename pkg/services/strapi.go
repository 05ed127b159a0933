package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"

	"doll-web/pkg/logger"
	"doll-web/pkg/models"
)

const defaultTimeout = 30 * time.Second

// StrapiSource talks to the content service over its REST API.
type StrapiSource struct {
	baseURL  string
	client   *http.Client
	hasToken bool
}

var _ ContentSource = (*StrapiSource)(nil)

// NewStrapiSource builds a client for baseURL. When token is set every
// request carries it as a bearer token. An *http.Client stored in ctx under
// oauth2.HTTPClient is used as the underlying transport.
func NewStrapiSource(ctx context.Context, baseURL, token string) *StrapiSource {
	var client *http.Client
	if token != "" {
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	} else if c, ok := ctx.Value(oauth2.HTTPClient).(*http.Client); ok {
		client = &http.Client{Transport: c.Transport}
	} else {
		client = &http.Client{}
	}
	client.Timeout = defaultTimeout

	return &StrapiSource{baseURL: baseURL, client: client, hasToken: token != ""}
}

func (s *StrapiSource) FetchCollection(ctx context.Context, q CollectionQuery) ([]byte, error) {
	if s.baseURL == "" {
		return nil, models.ErrMissingBaseURL
	}
	path := q.Path()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Debug("fetching %s", path)
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &models.FetchError{
			Path:       path,
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

// CreateContactSubmission stores a submission in the contact-submissions
// collection. Both the base URL and an API token are required.
func (s *StrapiSource) CreateContactSubmission(ctx context.Context, sub models.ContactSubmission) error {
	if s.baseURL == "" {
		return models.ErrMissingBaseURL
	}
	if !s.hasToken {
		return models.ErrMissingToken
	}

	payload, err := json.Marshal(map[string]any{"data": sub})
	if err != nil {
		return fmt.Errorf("encoding submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/contact-submissions", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting contact submission: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		info, _ := io.ReadAll(resp.Body)
		return &models.SubmitError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Info:       string(info),
		}
	}
	return nil
}
