package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/inspectkit/apierror"
	"github.com/kbukum/inspectkit/httpclient"
	"github.com/kbukum/inspectkit/logger"
	"github.com/kbukum/inspectkit/observability"
	"github.com/kbukum/inspectkit/validation"
)

// errProbeFailed makes the process exit non-zero after the report is printed.
var errProbeFailed = errors.New("probe failed")

type probeResult struct {
	URL        string `json:"url"`
	Status     int    `json:"status"`
	RequestID  string `json:"request_id"`
	DurationMS int64  `json:"duration_ms"`
}

func newProbeCmd(opts *rootOptions) *cobra.Command {
	var (
		method    string
		requestID string
		retry     bool
	)
	cmd := &cobra.Command{
		Use:   "probe URL",
		Short: "Send a request and classify the outcome",
		Long: `Probe sends a request using the api section of the config. URL may be
absolute or a path relative to api.base_url.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := validation.New().OptionalUUID("request_id", requestID).Validate(); err != nil {
				return err
			}
			return runProbe(ctx, cmd, opts, probeRequest{
				method:    strings.ToUpper(method),
				target:    args[0],
				requestID: requestID,
			}, retry)
		},
	}
	cmd.Flags().StringVarP(&method, "method", "X", http.MethodGet, "HTTP method")
	cmd.Flags().StringVar(&requestID, "request-id", "", "UUID sent as X-Request-Id (generated when empty)")
	cmd.Flags().BoolVar(&retry, "retry", false, "Retry retryable failures with backoff")
	return cmd
}

type probeRequest struct {
	method    string
	target    string
	requestID string
}

func runProbe(ctx context.Context, cmd *cobra.Command, opts *rootOptions, pr probeRequest, retry bool) error {
	cfg := opts.cfg.API
	cfg.Logger = logger.WithComponent("probe")
	if retry && cfg.Retry == nil {
		cfg.Retry = httpclient.DefaultRetryConfig()
	}
	cfg.OnSessionExpired = func(p *apierror.ParsedError) {
		opts.log.Warn("session expired, credentials must be renewed", logger.Fields(logger.FieldErrorCode, p.Code.String()))
	}

	if opts.cfg.Metrics.Enabled {
		mp, err := observability.InitMeter(ctx, &opts.cfg.Metrics)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mp.Shutdown(shutdownCtx); err != nil {
				opts.log.Warn("meter shutdown failed", logger.ErrorFields("probe", err))
			}
		}()
	}
	metrics, err := observability.NewErrorMetrics(observability.Meter(serviceName))
	if err != nil {
		return err
	}
	cfg.Metrics = metrics

	client, err := httpclient.New(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	req := httpclient.Request{Method: pr.method, Path: pr.target}
	if pr.requestID != "" {
		req.Headers = map[string]string{httpclient.HeaderRequestID: pr.requestID}
	}
	resp, err := client.Do(ctx, req)
	if err != nil {
		if werr := writeJSON(cmd.OutOrStdout(), newReport(apierror.Classify(err))); werr != nil {
			return werr
		}
		return fmt.Errorf("%w: %s %s", errProbeFailed, pr.method, pr.target)
	}

	return writeJSON(cmd.OutOrStdout(), probeResult{
		URL:        pr.target,
		Status:     resp.StatusCode,
		RequestID:  resp.RequestID,
		DurationMS: time.Since(start).Milliseconds(),
	})
}
