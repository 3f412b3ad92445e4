// Package client is a typed HTTP client for nutriplan-api.
package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"nutriplan-api/internal/models"
	"nutriplan-api/internal/nutrition"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []models.FieldError
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("nutriplan-api: %s (status %d)", e.Message, e.StatusCode)
	}
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Reason
	}
	return fmt.Sprintf("nutriplan-api: %s (status %d): %s", e.Message, e.StatusCode, strings.Join(parts, "; "))
}

// Client calls nutriplan-api. It is safe for concurrent use.
type Client struct {
	httpClient *resty.Client
}

// New returns a Client for the service at baseURL. Failed connections are
// retried twice.
func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{httpClient: c}
}

// CalculateGeneral returns the general-diet plan for req.
func (c *Client) CalculateGeneral(ctx context.Context, req models.DietRequest) (*nutrition.GeneralResult, error) {
	return call[nutrition.GeneralResult](ctx, c, "POST", "/calculate-normal-metabolic-diet", req)
}

// CalculateDietitian posts to the dietitian alias of the general endpoint.
func (c *Client) CalculateDietitian(ctx context.Context, req models.DietRequest) (*nutrition.GeneralResult, error) {
	return call[nutrition.GeneralResult](ctx, c, "POST", "/calculate/dietitian", req)
}

// CalculateNormalUser leaves factor and percentage defaults to the server.
func (c *Client) CalculateNormalUser(ctx context.Context, req models.DietRequest) (*nutrition.GeneralResult, error) {
	return call[nutrition.GeneralResult](ctx, c, "POST", "/calculate/normal_user", req)
}

// CalculateRenal returns the renal-diet plan for req.
func (c *Client) CalculateRenal(ctx context.Context, req models.RenalDietRequest) (*nutrition.RenalResult, error) {
	return call[nutrition.RenalResult](ctx, c, "POST", "/calculate-renal-diet", req)
}

// Reference returns the service's reference tables.
func (c *Client) Reference(ctx context.Context) (*nutrition.Tables, error) {
	return call[nutrition.Tables](ctx, c, "GET", "/reference", nil)
}

// ExportGeneral returns the general plan as XLSX bytes.
func (c *Client) ExportGeneral(ctx context.Context, req models.DietRequest) ([]byte, error) {
	return c.download(ctx, "/calculate-normal-metabolic-diet/export", req)
}

// ExportRenal returns the renal plan as XLSX bytes.
func (c *Client) ExportRenal(ctx context.Context, req models.RenalDietRequest) ([]byte, error) {
	return c.download(ctx, "/calculate-renal-diet/export", req)
}

func call[T any](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	var result models.Envelope[T]
	var failure models.Envelope[any]

	r := c.httpClient.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&failure)
	if body != nil {
		r.SetBody(body)
	}

	resp, err := r.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return nil, apiError(resp.StatusCode(), &failure)
	}
	return &result.Data, nil
}

func (c *Client) download(ctx context.Context, path string, body any) ([]byte, error) {
	var failure models.Envelope[any]
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetError(&failure).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("failed to call POST %s: %w", path, err)
	}
	if resp.IsError() {
		return nil, apiError(resp.StatusCode(), &failure)
	}
	return resp.Body(), nil
}

func apiError(status int, env *models.Envelope[any]) *APIError {
	msg := env.Message
	if msg == "" {
		msg = "request failed"
	}
	return &APIError{StatusCode: status, Message: msg, Errors: env.Errors}
}
