package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Executor struct {
	client  *http.Client
	baseURL string
}

func New(baseURL string) *Executor {
	return &Executor{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        1000,
				MaxIdleConnsPerHost: 100,
				MaxConnsPerHost:     100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL: baseURL,
	}
}

// CreateAccount registers a new user. The username is the account
// identifier; there is no separate numeric ID to resolve.
func (e *Executor) CreateAccount(ctx context.Context, username string) (string, error) {
	payload := map[string]interface{}{
		"username": username,
	}

	respBody, err := e.post(ctx, "/users", payload)
	if err != nil {
		return "", err
	}

	var result struct {
		Username string `json:"username"`
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse create user response: %w", err)
	}

	return result.Username, nil
}

func (e *Executor) Deposit(ctx context.Context, username, currency string, amount float64) error {
	payload := map[string]interface{}{
		"currency": currency,
		"amount":   amount,
	}
	_, err := e.post(ctx, fmt.Sprintf("/users/%s/deposit", username), payload)
	return err
}

func (e *Executor) Withdraw(ctx context.Context, username, currency string, amount float64) error {
	payload := map[string]interface{}{
		"currency": currency,
		"amount":   amount,
	}
	_, err := e.post(ctx, fmt.Sprintf("/users/%s/withdraw", username), payload)
	return err
}

func (e *Executor) Transfer(ctx context.Context, fromUsername, toUsername, currency string, amount float64) error {
	payload := map[string]interface{}{
		"from":     fromUsername,
		"to":       toUsername,
		"currency": currency,
		"amount":   amount,
	}
	_, err := e.post(ctx, "/transfers", payload)
	return err
}

func (e *Executor) GetBalance(ctx context.Context, username, currency string) (float64, error) {
	resp, err := e.get(ctx, fmt.Sprintf("/users/%s/balance?currency=%s", username, currency))
	if err != nil {
		return 0, err
	}

	var result struct {
		Balance string `json:"balance"`
	}

	if err := json.Unmarshal(resp, &result); err != nil {
		return 0, fmt.Errorf("failed to parse balance response: %w", err)
	}

	var balance float64
	if _, err := fmt.Sscanf(result.Balance, "%f", &balance); err != nil {
		return 0, fmt.Errorf("failed to parse balance value %q: %w", result.Balance, err)
	}

	return balance, nil
}

func (e *Executor) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Load-Test", "true")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var respBody bytes.Buffer
	if _, err := respBody.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, respBody.String())
	}

	return respBody.Bytes(), nil
}

func (e *Executor) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", e.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Load-Test", "true")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var respBody bytes.Buffer
	if _, err := respBody.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, respBody.String())
	}

	return respBody.Bytes(), nil
}
