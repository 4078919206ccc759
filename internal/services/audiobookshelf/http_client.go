package audiobookshelf

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const userAgent = "absweep/0.1.0"

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// httpClient implements Client against the Audiobookshelf REST API.
type httpClient struct {
	baseURL  string
	token    string
	client   HTTPDoer
	pageSize int
}

// Option adjusts client construction.
type Option func(*httpClient)

// WithHTTPDoer replaces the HTTP backend, mainly for tests.
func WithHTTPDoer(doer HTTPDoer) Option {
	return func(c *httpClient) { c.client = doer }
}

// WithPageSize sets the page size used when listing library items.
func WithPageSize(size int) Option {
	return func(c *httpClient) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithTimeout sets the request timeout on the default HTTP backend.
func WithTimeout(timeout time.Duration) Option {
	return func(c *httpClient) {
		if hc, ok := c.client.(*http.Client); ok && timeout > 0 {
			hc.Timeout = timeout
		}
	}
}

// WithInsecureTLS disables certificate verification on the default HTTP
// backend, for instances behind self-signed certificates.
func WithInsecureTLS() Option {
	return func(c *httpClient) {
		hc, ok := c.client.(*http.Client)
		if !ok {
			return
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		hc.Transport = transport
	}
}

// NewHTTPClient constructs an Audiobookshelf API client.
func NewHTTPClient(baseURL, token string, opts ...Option) Client {
	c := &httpClient{
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:    strings.TrimSpace(token),
		client:   &http.Client{Timeout: 30 * time.Second},
		pageSize: 100,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.doJSONRequest(ctx, http.MethodGet, "/api/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *httpClient) Libraries(ctx context.Context) ([]Library, error) {
	var resp librariesResponse
	if err := c.doJSONRequest(ctx, http.MethodGet, "/api/libraries", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Libraries, nil
}

func (c *httpClient) LibraryItems(ctx context.Context, libraryID string) ([]LibraryItem, error) {
	var items []LibraryItem
	for page := 0; ; page++ {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(c.pageSize))
		params.Set("page", strconv.Itoa(page))

		var resp itemsPage
		path := fmt.Sprintf("/api/libraries/%s/items", url.PathEscape(libraryID))
		if err := c.doJSONRequest(ctx, http.MethodGet, path, params, &resp); err != nil {
			return nil, err
		}

		items = append(items, resp.Results...)
		if len(resp.Results) < c.pageSize {
			break
		}
		if resp.Total > 0 && len(items) >= resp.Total {
			break
		}
	}
	return items, nil
}

func (c *httpClient) LibraryItem(ctx context.Context, itemID string) (*LibraryItem, error) {
	params := url.Values{}
	params.Set("expanded", "1")

	var item LibraryItem
	path := fmt.Sprintf("/api/items/%s", url.PathEscape(itemID))
	if err := c.doJSONRequest(ctx, http.MethodGet, path, params, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *httpClient) DeleteEpisode(ctx context.Context, libraryItemID, episodeID string, hard bool) error {
	params := url.Values{}
	if hard {
		params.Set("hard", "1")
	}
	path := fmt.Sprintf("/api/podcasts/%s/episode/%s", url.PathEscape(libraryItemID), url.PathEscape(episodeID))
	return c.doJSONRequest(ctx, http.MethodDelete, path, params, nil)
}

func (c *httpClient) DeleteLibraryItem(ctx context.Context, libraryItemID string, hard bool) error {
	params := url.Values{}
	if hard {
		params.Set("hard", "1")
	}
	path := fmt.Sprintf("/api/items/%s", url.PathEscape(libraryItemID))
	return c.doJSONRequest(ctx, http.MethodDelete, path, params, nil)
}

func (c *httpClient) doJSONRequest(ctx context.Context, method, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("audiobookshelf request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return ErrUnauthorized
		}
		return fmt.Errorf("audiobookshelf %s %s returned %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
