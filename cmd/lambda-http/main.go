package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-http

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"

	"magang-intel/internal/bootstrap"
	"magang-intel/internal/shared/config"
	"magang-intel/internal/shared/telemetry"
)

var (
	initOnce  sync.Once
	initErr   error
	app       *bootstrap.App
	ginLambda *ginadapter.GinLambdaV2
)

func initApp() {
	cfg := config.Load()
	built, err := bootstrap.Build(cfg)
	if err != nil {
		initErr = err
		return
	}
	app = built
	ginLambda = ginadapter.NewV2(app.Router)
}

// refreshIfStale reloads the dataset when a warm container outlives the
// reload interval. Lambda has no long-running goroutine to do it.
func refreshIfStale(ctx context.Context) {
	if app == nil || app.Reloader == nil {
		return
	}
	st := app.Dataset.Status()
	interval := app.Reloader.Interval
	if st.Loaded && st.LoadedAt != nil && interval > 0 && st.LoadedAt.Add(interval).After(time.Now()) {
		return
	}
	_ = app.Reloader.LoadOnce(ctx)
}

func handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	initOnce.Do(initApp)
	if initErr != nil {
		telemetry.Error("bootstrap.failed", map[string]any{"error": initErr})
		body, _ := json.Marshal(map[string]string{"error": "bootstrap failed"})
		return events.APIGatewayV2HTTPResponse{
			StatusCode: 500,
			Body:       string(body),
			Headers:    map[string]string{"Content-Type": "application/json"},
		}, initErr
	}
	if ginLambda == nil {
		return events.APIGatewayV2HTTPResponse{
			StatusCode: 500,
			Body:       `{"error":"router not initialized"}`,
			Headers:    map[string]string{"Content-Type": "application/json"},
		}, nil
	}
	refreshIfStale(ctx)
	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(handler)
}
