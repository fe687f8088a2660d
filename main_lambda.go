//go:build lambda

package main

import (
	"context"
	_ "embed"
	"encoding/base64"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"build-optimizer/internal/build"
	"build-optimizer/internal/config"
	"build-optimizer/internal/item"
)

//go:embed data/items.json
var embeddedItems string

// deadlineMargin is left for encoding the response.
const deadlineMargin = 2 * time.Second

var loadDatabase = sync.OnceValues(func() (*item.Database, error) {
	return item.Parse(embeddedItems)
})

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

type searchResult struct {
	Total     int64          `json:"total"`
	Evaluated int64          `json:"evaluated"`
	Feasible  int64          `json:"feasible"`
	Stopped   bool           `json:"stopped"`
	Partial   bool           `json:"partial"`
	TimeMs    int64          `json:"timeMs"`
	Best      []build.Result `json:"best"`
	Detail    string         `json:"detail"`
}

// handler takes the YAML search config as the request body.
func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}
	if body == "" {
		return errResp(400, "missing config body")
	}

	cfg, err := config.Parse([]byte(body))
	if err != nil {
		return errResp(400, err.Error())
	}
	if err := cfg.ApplyEnv(); err != nil {
		return errResp(500, err.Error())
	}
	// no writable outputs in the function
	cfg.Output.DBPath, cfg.Output.XLSXPath, cfg.Output.LogBuilds = "", "", false

	db, err := loadDatabase()
	if err != nil {
		return errResp(500, "items database: "+err.Error())
	}

	if dl, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, dl.Add(-deadlineMargin))
		defer cancel()
	}

	sum, err := runSearch(ctx, cfg, db, logw())
	partial := errors.Is(err, context.DeadlineExceeded)
	switch {
	case err == nil, partial:
	case errors.Is(err, item.ErrUnknownItem):
		return errResp(400, err.Error())
	default:
		return errResp(500, err.Error())
	}

	resp := searchResult{
		Total:     sum.Total,
		Evaluated: sum.Evaluated,
		Feasible:  sum.Feasible,
		Stopped:   sum.Stopped,
		Partial:   partial,
		TimeMs:    sum.Elapsed.Milliseconds(),
		Best:      sum.Best,
	}
	if len(sum.Best) > 0 {
		resp.Detail = FormatResult(sum.Best[0])
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
