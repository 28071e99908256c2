//go:build lambda

// Command tilesolver-lambda serves Solve behind an AWS Lambda Function URL.
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"

	"github.com/cimpress/tilesolver"
	"github.com/cimpress/tilesolver/internal/puzzle"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

var log = zerolog.New(os.Stderr).With().Timestamp().Logger()

type solveRequest struct {
	Puzzle         json.RawMessage `json:"puzzle"`
	PopulationSize int             `json:"populationSize"`
	Deadline       string          `json:"deadline"`
	Seed           uint64          `json:"seed"`
}

type solveResponse struct {
	PuzzleID string             `json:"puzzleId"`
	Squares  int                `json:"squares"`
	TimeMs   int64              `json:"timeMs"`
	Detail   string             `json:"detail"`
	Decomp   []tilesolver.Square `json:"decomposition"`
}

func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}

	var req solveRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return errResp(400, "invalid JSON: "+err.Error())
	}
	if len(req.Puzzle) == 0 {
		return errResp(400, "missing puzzle field")
	}

	pz, err := puzzle.Load(req.Puzzle)
	if err != nil {
		return errResp(400, "invalid puzzle: "+err.Error())
	}

	cfg := tilesolver.DefaultConfig()
	if req.PopulationSize > 0 {
		cfg.PopulationSize = req.PopulationSize
	}
	if req.Deadline != "" {
		d, err := time.ParseDuration(req.Deadline)
		if err != nil {
			return errResp(400, "invalid deadline: "+err.Error())
		}
		cfg.Deadline = d
	}
	if req.Seed != 0 {
		cfg.Seed = req.Seed
	}

	res, err := tilesolver.Solve(ctx, pz.Grid, cfg, pz.ID, nil, log)
	if err != nil {
		return errResp(500, "solve failed: "+err.Error())
	}

	resp := solveResponse{
		PuzzleID: pz.ID,
		Squares:  res.Fitness,
		TimeMs:   res.Elapsed.Milliseconds(),
		Detail:   tilesolver.FormatResult(res),
		Decomp:   res.Squares,
	}
	respJSON, _ := json.Marshal(resp)
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	lambda.Start(handler)
}
