// Package client is a typed client for the zeabis JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zeabis/zeabis/internal/contract"
	"github.com/zeabis/zeabis/internal/domain"
)

type Client struct {
	base  string
	http  *http.Client
	token string
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a client for the API rooted at baseURL, e.g.
// "http://localhost:3001/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the bearer token currently attached to requests.
func (c *Client) Token() string { return c.token }

func (c *Client) SetToken(token string) { c.token = token }

// do sends body as JSON and decodes a 2xx answer into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.base + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isConnectionError(err) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &eb)
		return nil, statusError(resp.StatusCode, eb.Error)
	}
	return data, nil
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

// Raw issues a GET and returns the undecoded body.
func (c *Client) Raw(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	data, err := c.send(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// Login exchanges credentials for a session and keeps its token.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	var sess domain.Session
	if err := c.do(ctx, http.MethodPost, "auth/login", nil, domain.Credentials{Email: email, Password: password}, &sess); err != nil {
		return nil, err
	}
	c.token = sess.Token
	return &sess, nil
}

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.Session, error) {
	var sess domain.Session
	if err := c.do(ctx, http.MethodPost, "auth/register", nil, reg, &sess); err != nil {
		return nil, err
	}
	c.token = sess.Token
	return &sess, nil
}

func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, http.MethodGet, "auth/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Logout tells the server and forgets the token even if the call fails.
func (c *Client) Logout(ctx context.Context) error {
	defer func() { c.token = "" }()
	return c.do(ctx, http.MethodPost, "auth/logout", nil, nil, nil)
}

func (c *Client) Customers(ctx context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	err := c.do(ctx, http.MethodGet, "customers", nil, nil, &out)
	return out, err
}

func (c *Client) Projects(ctx context.Context, status domain.ProjectStatus) ([]domain.Project, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	var out []domain.Project
	err := c.do(ctx, http.MethodGet, "projects", q, nil, &out)
	return out, err
}

func (c *Client) Invoices(ctx context.Context, status domain.InvoiceStatus) ([]domain.Invoice, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	var out []domain.Invoice
	err := c.do(ctx, http.MethodGet, "invoices", q, nil, &out)
	return out, err
}

func (c *Client) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var out domain.DashboardStats
	if err := c.do(ctx, http.MethodGet, "dashboard/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Revenue(ctx context.Context) ([]domain.RevenuePoint, error) {
	var out []domain.RevenuePoint
	err := c.do(ctx, http.MethodGet, "dashboard/revenue", nil, nil, &out)
	return out, err
}

func reportQuery(f contract.FilterValues, sortKey, dir string) url.Values {
	q := f.Encode()
	if sortKey != "" {
		q.Set("sort", sortKey)
		if dir != "" {
			q.Set("dir", dir)
		}
	}
	return q
}

// BillingReport fetches the billing tracker with filters applied server-side.
func (c *Client) BillingReport(ctx context.Context, f contract.FilterValues, sortKey, dir string) (*contract.BillingReportResponse, error) {
	var out contract.BillingReportResponse
	if err := c.do(ctx, http.MethodGet, "reports/billing", reportQuery(f, sortKey, dir), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) InvoiceReport(ctx context.Context, f contract.FilterValues, sortKey, dir string) (*contract.InvoiceReportResponse, error) {
	var out contract.InvoiceReportResponse
	if err := c.do(ctx, http.MethodGet, "reports/invoices", reportQuery(f, sortKey, dir), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BillingWorkbook downloads the billing report as xlsx bytes.
func (c *Client) BillingWorkbook(ctx context.Context, f contract.FilterValues) ([]byte, error) {
	return c.send(ctx, http.MethodGet, "reports/billing.xlsx", f.Encode(), nil)
}
