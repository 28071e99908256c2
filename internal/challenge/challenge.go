// Package challenge is a small stdlib net/http client for the puzzle
// challenge API a running solver fetches puzzles from and submits solutions
// to. It uses net/http directly, unlike most of this module's I/O — no
// third-party HTTP client shows up anywhere in the retrieved reference
// pack, and net/http's client is already the idiom the ecosystem reaches
// for absent a specific reason (retries, tracing, HTTP/3) to pull one in.
package challenge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to a challenge API endpoint: fetch the current puzzle, submit
// a solution's square decomposition. Grounded on the original solver's
// ChallengeAPI get/submit pair.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New builds a Client. baseURL should not have a trailing slash.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// PuzzleDoc is the raw puzzle payload the API returns, still in on-wire
// form; callers pass it to puzzle.Load.
type PuzzleDoc struct {
	ID   string          `json:"id"`
	Body json.RawMessage `json:"body"`
}

// Get fetches the current puzzle.
func (c *Client) Get(ctx context.Context) (*PuzzleDoc, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/puzzle", nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("challenge: get puzzle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("challenge: get puzzle: status %d: %s", resp.StatusCode, body)
	}

	var doc PuzzleDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("challenge: decode puzzle: %w", err)
	}
	return &doc, nil
}

// Square is one axis-aligned filled square in a submitted decomposition:
// (X, Y) its top-left corner, Size its side length. Mirrors
// tilesolver.Square field-for-field without importing the root package, so
// this client's wire types stay independent of the solver's in-memory ones
// (see PuzzleDoc for the same reasoning on the Get side).
type Square struct {
	X    uint16 `json:"x"`
	Y    uint16 `json:"y"`
	Size uint16 `json:"size"`
}

// submitRequest is the body Submit posts: the full square list so the
// server can validate coverage itself, plus the count it implies, matching
// the original solver's submit payload rather than a bare count.
type submitRequest struct {
	PuzzleID string   `json:"puzzle_id"`
	Squares  []Square `json:"squares"`
	Count    int      `json:"count"`
}

// SubmitResult is the response the challenge API returns after grading a
// submission.
type SubmitResult struct {
	Accepted bool   `json:"accepted"`
	Rank     int    `json:"rank"`
	Message  string `json:"message"`
}

// Submit reports a solution's square decomposition for puzzleID, so the
// server can validate coverage rather than trust a bare count.
func (c *Client) Submit(ctx context.Context, puzzleID string, squares []Square) (*SubmitResult, error) {
	body, err := json.Marshal(submitRequest{PuzzleID: puzzleID, Squares: squares, Count: len(squares)})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/submit", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("challenge: submit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("challenge: submit: status %d: %s", resp.StatusCode, respBody)
	}

	var result SubmitResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("challenge: decode submit result: %w", err)
	}
	return &result, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
