// Package errs reports unexpected errors to logs and Sentry
package errs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/texpack/pkg/utils/logging"
)

// Handle logs err with its goerr values and sends it to Sentry if a client is configured
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	attrs := []any{slog.Any("error", err)}

	var gErr *goerr.Error
	if errors.As(err, &gErr) {
		for k, v := range gErr.Values() {
			attrs = append(attrs, slog.Any(k, v))
		}
	}

	if hub := sentry.CurrentHub(); hub.Client() != nil {
		evID := hub.CaptureException(err)
		if evID != nil {
			attrs = append(attrs, slog.String("sentry_event_id", string(*evID)))
		}
	}

	logging.From(ctx).Error("Error occurred", attrs...)
}
