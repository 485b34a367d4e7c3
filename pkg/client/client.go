// AngelaMos | 2026
// client.go

// Package client is a typed HTTP client for the TurisGal API. It
// attaches the stored bearer token to every call and unwraps responses
// into Response values.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	now     func() time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTokenStore(store TokenStore) Option {
	return func(c *Client) { c.tokens = store }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New builds a client for baseURL, for example "http://localhost:3000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  NewMemoryStore(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Token() string {
	return c.tokens.Token()
}

func (c *Client) SetToken(token string) {
	c.tokens.SetToken(token)
}

func (c *Client) Logout() {
	c.tokens.SetToken("")
}

// IsAuthenticated reports whether a non-expired token is stored. An
// expired token is cleared.
func (c *Client) IsAuthenticated() bool {
	token := c.tokens.Token()
	if token == "" {
		return false
	}
	if tokenExpired(token, c.now()) {
		c.Logout()
		return false
	}
	return true
}

// Login stores the returned token on success.
func (c *Client) Login(ctx context.Context, email, password string) (*Response[LoginResponse], error) {
	body := map[string]string{"email": email, "password": password}

	resp, err := call[LoginResponse](ctx, c, http.MethodPost, "/auth/login", nil, body)
	if err != nil {
		return nil, err
	}
	if resp.Success && resp.Data.Token != "" {
		c.SetToken(resp.Data.Token)
	}
	return resp, nil
}

func (c *Client) GetUsers(ctx context.Context, q UserQuery) (*Response[UsersResponse], error) {
	return call[UsersResponse](ctx, c, http.MethodGet, "/users", q.values(true), nil)
}

func (c *Client) GetCurrentUser(ctx context.Context) (*Response[User], error) {
	return call[User](ctx, c, http.MethodGet, "/users/me", nil, nil)
}

func (c *Client) GetUser(ctx context.Context, id string) (*Response[User], error) {
	return call[User](ctx, c, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil)
}

func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*Response[User], error) {
	return call[User](ctx, c, http.MethodPost, "/users", nil, req)
}

func (c *Client) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*Response[User], error) {
	return call[User](ctx, c, http.MethodPut, "/users/"+url.PathEscape(id), nil, req)
}

func (c *Client) DeleteUser(ctx context.Context, id string) (*Response[MessageResponse], error) {
	return call[MessageResponse](ctx, c, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ChangeUserPassword(
	ctx context.Context,
	id, newPassword string,
) (*Response[MessageResponse], error) {
	body := map[string]string{"newPassword": newPassword}
	return call[MessageResponse](ctx, c, http.MethodPatch, "/users/"+url.PathEscape(id)+"/password", nil, body)
}

// ExportUsers returns the raw CSV document.
func (c *Client) ExportUsers(ctx context.Context, q UserQuery) (*Response[[]byte], error) {
	return c.raw(ctx, "/users/export", q.values(false))
}

func (c *Client) GetProperties(ctx context.Context, q PropertyQuery) (*Response[PropertiesResponse], error) {
	return call[PropertiesResponse](ctx, c, http.MethodGet, "/properties", q.values(true), nil)
}

func (c *Client) GetProperty(ctx context.Context, id string) (*Response[Property], error) {
	return call[Property](ctx, c, http.MethodGet, "/properties/"+url.PathEscape(id), nil, nil)
}

// CreateProperty sends body as-is so callers can pass the dashboard's
// form payload.
func (c *Client) CreateProperty(ctx context.Context, body any) (*Response[PropertyMutation], error) {
	return call[PropertyMutation](ctx, c, http.MethodPost, "/properties", nil, body)
}

func (c *Client) UpdateProperty(ctx context.Context, id string, body any) (*Response[PropertyMutation], error) {
	return call[PropertyMutation](ctx, c, http.MethodPut, "/properties/"+url.PathEscape(id), nil, body)
}

func (c *Client) DeleteProperty(ctx context.Context, id string) (*Response[MessageResponse], error) {
	return call[MessageResponse](ctx, c, http.MethodDelete, "/properties/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ExportProperties(ctx context.Context, q PropertyQuery) (*Response[[]byte], error) {
	return c.raw(ctx, "/properties/export/csv", q.values(false))
}

func (c *Client) GetPropertyStats(ctx context.Context) (*Response[PropertyStats], error) {
	return call[PropertyStats](ctx, c, http.MethodGet, "/properties/stats/overview", nil, nil)
}

func (c *Client) GetPropertyOwners(ctx context.Context, q OwnerQuery) (*Response[PropertyOwnersResponse], error) {
	return call[PropertyOwnersResponse](ctx, c, http.MethodGet, "/property-owners", q.values(), nil)
}

// call sends a JSON request and decodes a JSON response into T. The
// returned error is reserved for transport and encoding failures.
func call[T any](
	ctx context.Context,
	c *Client,
	method, path string,
	query url.Values,
	body any,
) (*Response[T], error) {
	res, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close() //nolint:errcheck // read-only body

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}

	out := &Response[T]{StatusCode: res.StatusCode}
	if !ok(res.StatusCode) {
		c.fail(out, res, raw)
		return out, nil
	}

	out.Success = true
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &out.Data); err != nil {
			return nil, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
		var msg MessageResponse
		if json.Unmarshal(raw, &msg) == nil {
			out.Message = msg.Message
		}
	}
	return out, nil
}

func (c *Client) raw(ctx context.Context, path string, query url.Values) (*Response[[]byte], error) {
	res, err := c.send(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close() //nolint:errcheck // read-only body

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	out := &Response[[]byte]{StatusCode: res.StatusCode}
	if !ok(res.StatusCode) {
		c.fail(out, res, data)
		return out, nil
	}

	out.Success = true
	out.Data = data
	return out, nil
}

func (c *Client) send(
	ctx context.Context,
	method, path string,
	query url.Values,
	body any,
) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return res, nil
}

// fail fills a failed response from the server body. A 401 clears the
// stored token.
func (c *Client) fail(out interface{ setFailure(string, string) }, res *http.Response, raw []byte) {
	if res.StatusCode == http.StatusUnauthorized {
		c.Logout()
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if strings.Contains(res.Header.Get("Content-Type"), "application/json") &&
		json.Unmarshal(raw, &body) == nil {
		switch {
		case body.Message != "":
			out.setFailure(body.Message, body.Message)
		case body.Error != "":
			out.setFailure("", body.Error)
		default:
			out.setFailure("", http.StatusText(res.StatusCode))
		}
		return
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		text = http.StatusText(res.StatusCode)
	}
	out.setFailure("", text)
}

func (r *Response[T]) setFailure(message, errText string) {
	r.Success = false
	r.Message = message
	r.Error = errText
}

func ok(status int) bool {
	return status >= 200 && status < 300
}

func (q UserQuery) values(paged bool) url.Values {
	v := url.Values{}
	if paged {
		setInt(v, "page", q.Page)
		setInt(v, "limit", q.Limit)
	}
	setString(v, "search", q.Search)
	setBool(v, "verified", q.Verified)
	setString(v, "from", q.From)
	setString(v, "to", q.To)
	return v
}

func (q PropertyQuery) values(paged bool) url.Values {
	v := url.Values{}
	if paged {
		setInt(v, "page", q.Page)
		setInt(v, "limit", q.Limit)
	}
	setString(v, "search", q.Search)
	setString(v, "propertyType", q.PropertyType)
	setBool(v, "isActive", q.IsActive)
	setString(v, "ownerId", q.OwnerID)
	return v
}

func (q OwnerQuery) values() url.Values {
	v := url.Values{}
	setInt(v, "page", q.Page)
	setInt(v, "limit", q.Limit)
	setString(v, "search", q.Search)
	return v
}

func setInt(v url.Values, key string, n int) {
	if n > 0 {
		v.Set(key, strconv.Itoa(n))
	}
}

func setString(v url.Values, key, s string) {
	if s != "" {
		v.Set(key, s)
	}
}

func setBool(v url.Values, key string, b *bool) {
	if b != nil {
		v.Set(key, strconv.FormatBool(*b))
	}
}
