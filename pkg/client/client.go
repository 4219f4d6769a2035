// Package client is a typed Go client for the user directory HTTP API.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for the API rooted at baseURL, e.g.
// "http://localhost:5000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListUsers(ctx context.Context, page, limit int, search string) (*Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("search", search)

	var p Page
	if err := c.do(ctx, http.MethodGet, "/users?"+q.Encode(), nil, "", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) SearchUsers(ctx context.Context, text string) ([]User, error) {
	var us []User
	if err := c.do(ctx, http.MethodGet, "/users/search?q="+url.QueryEscape(text), nil, "", &us); err != nil {
		return nil, err
	}
	return us, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, "", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser sends in as multipart form data; img may be nil.
func (c *Client) CreateUser(ctx context.Context, in UserInput, img *Image) (*User, error) {
	body, ct, err := encodeForm(in, img)
	if err != nil {
		return nil, err
	}

	var u User
	if err = c.do(ctx, http.MethodPost, "/users", body, ct, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser changes only the fields set in in. A new img replaces the
// avatar; in.RemoveImage without img resets it to the default.
func (c *Client) UpdateUser(ctx context.Context, id string, in UserInput, img *Image) (*User, error) {
	body, ct, err := encodeForm(in, img)
	if err != nil {
		return nil, err
	}

	var u User
	if err = c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), body, ct, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, "", nil)
}

// ExportCSV downloads the CSV export of all users.
func (c *Client) ExportCSV(ctx context.Context) ([]byte, error) {
	resp, err := c.send(ctx, http.MethodGet, "/users/export-csv", nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// ExportURL is the download link for the CSV export.
func (c *Client) ExportURL() string { return c.baseURL + "/users/export-csv" }

// ImageURL is the public link of a stored avatar.
func (c *Client) ImageURL(name string) string {
	return strings.TrimSuffix(c.baseURL, "/api") + "/uploads/" + url.PathEscape(name)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	resp, err := c.send(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// send performs the request and turns non-2xx responses into *APIError.
func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	apiErr := &APIError{Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Message != "" {
		apiErr.Message = payload.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return nil, apiErr
}

func encodeForm(in UserInput, img *Image) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := []struct {
		key string
		val *string
	}{
		{"firstName", in.FirstName},
		{"lastName", in.LastName},
		{"email", in.Email},
		{"mobile", in.Mobile},
		{"gender", in.Gender},
		{"status", in.Status},
		{"location", in.Location},
		{"dateOfBirth", in.DateOfBirth},
	}
	for _, f := range fields {
		if f.val == nil {
			continue
		}
		if err := mw.WriteField(f.key, *f.val); err != nil {
			return nil, "", err
		}
	}
	if in.RemoveImage {
		if err := mw.WriteField("removeImage", "true"); err != nil {
			return nil, "", err
		}
	}
	if img != nil {
		fw, err := mw.CreateFormFile("profileImage", img.FileName)
		if err != nil {
			return nil, "", err
		}
		if _, err = fw.Write(img.Content); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return &buf, mw.FormDataContentType(), nil
}
