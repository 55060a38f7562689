// Package eventgrp maintains the live event stream over a websocket.
package eventgrp

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/babybtc/quantlab/business/sys/metrics"
	"github.com/babybtc/quantlab/foundation/blockchain/eventlog"
	"github.com/babybtc/quantlab/foundation/events"
	"github.com/babybtc/quantlab/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the event stream endpoint.
type Handlers struct {
	Log     *zap.SugaredLogger
	WS      websocket.Upgrader
	Evts    *events.Events[eventlog.Formatted]
	Metrics *metrics.Metrics
	Origins []string
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(h.Origins, "*") || slices.Contains(h.Origins, origin)
	}

	// Upgrade writes the error response itself on failure.
	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Infow("websocket", "traceid", v.TraceID, "status", "upgrade failed", "ERROR", err)
		return nil
	}
	defer c.Close()

	// The connection is hijacked so record the status for the logs.
	web.SetStatusCode(ctx, http.StatusSwitchingProtocols)

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	h.Metrics.WebsocketClients.Inc()
	defer h.Metrics.WebsocketClients.Dec()

	h.Log.Infow("websocket", "traceid", v.TraceID, "status", "client connected")

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case ev, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteJSON(ev); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}
