// Package register announces this backend to a load balancer.
//
// The load balancer accepts POST /register with the backend address and
// weight, health-checks <address>/health and answers with a status envelope.
package register

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

type Request struct {
	Address string `json:"address"`
	Weight  int    `json:"weight"`
}

// Response is the envelope every load balancer reply is wrapped in.
type Response struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// RejectedError is returned when the load balancer answers with anything
// other than a success envelope.
type RejectedError struct {
	StatusCode int
	Status     string
	Data       string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("registration rejected (%d %s): %s", e.StatusCode, e.Status, e.Data)
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Register asks the load balancer to start routing to address.
func (c *Client) Register(ctx context.Context, address string, weight int) error {
	body, err := json.Marshal(Request{Address: address, Weight: weight})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/register", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("registering with %s: %w", c.BaseURL, err)
	}
	defer resp.Body.Close()

	var envelope Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decoding registration response (%d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK || envelope.Status != StatusSuccess {
		return &RejectedError{
			StatusCode: resp.StatusCode,
			Status:     envelope.Status,
			Data:       string(envelope.Data),
		}
	}
	return nil
}
