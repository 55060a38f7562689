package mid

import (
	"context"
	"net/http"
	"strconv"

	"github.com/babybtc/quantlab/business/sys/metrics"
	"github.com/babybtc/quantlab/foundation/web"
)

// Metrics updates program counters.
func Metrics(mtr *metrics.Metrics) web.Middleware {

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			// Call the next handler.
			err := handler(ctx, w, r)

			status := http.StatusOK
			if v, verr := web.GetValues(ctx); verr == nil && v.StatusCode != 0 {
				status = v.StatusCode
			}

			mtr.Requests.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()

			// Return the error so it can be handled further up the chain.
			return err
		}

		return h
	}

	return m
}
