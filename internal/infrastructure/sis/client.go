// Package sis is the HTTP adapter for the Student Information System.
package sis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
)

const (
	defaultTimeout = 10 * time.Second
	tokenTTL       = 5 * time.Minute
	maxBodyBytes   = 8 << 20
)

// Config captures the upstream address and the optional token secret.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	TokenSecret string
	// Subject and Role are the claims carried by the service token.
	Subject string
	Role    string
}

// Client implements ports.SISClient over JSON/HTTP.
type Client struct {
	base *url.URL
	http *http.Client
	cfg  Config
	now  func() time.Time
	log  zerolog.Logger
}

// NewClient validates the base URL and returns a Client.
func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("sis: invalid base url %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
		cfg:  cfg,
		now:  time.Now,
		log:  log,
	}, nil
}

type writeResult struct {
	Success bool `json:"success"`
}

func (c *Client) ListCounselors(ctx context.Context) ([]domain.Counselor, error) {
	var out []domain.Counselor
	if err := c.do(ctx, http.MethodGet, "/api/counselors", nil, &out); err != nil {
		return nil, fmt.Errorf("list counselors: %w", err)
	}
	return out, nil
}

func (c *Client) ListStudents(ctx context.Context) ([]domain.Student, error) {
	var out []domain.Student
	if err := c.do(ctx, http.MethodGet, "/api/students", nil, &out); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return out, nil
}

func (c *Client) ListMessages(ctx context.Context) ([]domain.Message, error) {
	var out []domain.Message
	if err := c.do(ctx, http.MethodGet, "/api/messages", nil, &out); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return out, nil
}

func (c *Client) CreateCounselor(ctx context.Context, counselor domain.Counselor) error {
	return c.write(ctx, http.MethodPost, "/api/counselors", counselor, "create counselor")
}

func (c *Client) DeleteCounselor(ctx context.Context, username string) error {
	return c.write(ctx, http.MethodDelete, "/api/counselors/"+url.PathEscape(username), nil, "delete counselor")
}

func (c *Client) CreateStudent(ctx context.Context, student domain.Student) error {
	return c.write(ctx, http.MethodPost, "/api/students", student, "create student")
}

// write sends a mutation and interprets the {success} envelope.
func (c *Client) write(ctx context.Context, method, path string, body any, op string) error {
	var res writeResult
	if err := c.do(ctx, method, path, body, &res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !res.Success {
		return fmt.Errorf("%s: %w", op, domain.ErrApplicationFailure)
	}
	return nil
}

// do performs the request and decodes the JSON body into out. The status
// code is not inspected: the body alone decides the outcome, and a body that
// is not JSON is a network failure.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.authorize(req); err != nil {
		return err
	}

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", c.now().Sub(start)).
		Msg("sis request")

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s (status %d): %w", domain.ErrNetworkFailure, method, path, resp.StatusCode, err)
	}
	return nil
}

// authorize attaches a short-lived HS256 service token when a secret is
// configured.
func (c *Client) authorize(req *http.Request) error {
	if c.cfg.TokenSecret == "" {
		return nil
	}
	now := c.now()
	claims := jwt.MapClaims{
		"sub":  c.cfg.Subject,
		"role": c.cfg.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.cfg.TokenSecret))
	if err != nil {
		return fmt.Errorf("sign service token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+signed)
	return nil
}
