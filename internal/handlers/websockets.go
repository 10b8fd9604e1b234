package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"green_index/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	maxInterval      = 60 * time.Second
	maxIntervalMilli = 60_000
)

// WebSocket message types.
const (
	msgTotals  = "totals"
	msgReading = "reading"
	msgAlert   = "alert"
	msgDataset = "dataset"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

type datasetSummary struct {
	Rows       int               `json:"rows"`
	Statistics models.Statistics `json:"statistics"`
	GreenIndex int               `json:"green_index"`
}

// newUpgrader accepts any origin when allowed is empty. Requests without an
// Origin header (non-browser clients) are always accepted.
func newUpgrader(allowed []string) websocket.Upgrader {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.ToLower(strings.TrimRight(o, "/"))] = struct{}{}
	}
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if len(set) == 0 || origin == "" {
				return true
			}
			_, ok := set[strings.ToLower(origin)]
			return ok
		},
	}
}

// @Summary      Live stream
// @Description  WebSocket: campus totals every interval plus reading, alert and dataset events as they happen. ?category= limits readings.
// @Tags         system
// @Param        interval     query  string  false  "Totals interval, e.g. 2s"
// @Param        interval_ms  query  int     false  "Totals interval in ms"
// @Param        category     query  string  false  "Only stream readings of this category"
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)
	var only models.Category
	if q := c.Query("category"); q != "" {
		category, err := models.ParseCategory(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		only = category
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Subscribe before the first write so no event between snapshot and
	// stream is missed.
	readings, stopReadings := h.services.Sensors.StreamReadings(h.wsBuffer, h.metrics.StreamDropped("ws_readings"))
	defer stopReadings()
	alerts, stopAlerts := h.services.Sensors.StreamAlerts(h.wsBuffer, h.metrics.StreamDropped("ws_alerts"))
	defer stopAlerts()
	datasets, stopDatasets := h.services.Dataset.StreamDataset(1, h.metrics.StreamDropped("ws_dataset"))
	defer stopDatasets()

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	if err := h.send(conn, msgTotals, h.services.Sensors.CampusTotals()); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	for {
		var err error
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			err = conn.WriteMessage(websocket.PingMessage, nil)
		case <-ticker.C:
			err = h.send(conn, msgTotals, h.services.Sensors.CampusTotals())
		case r, ok := <-readings:
			if !ok {
				return
			}
			if only != "" && r.Category != only {
				continue
			}
			err = h.send(conn, msgReading, r)
		case a, ok := <-alerts:
			if !ok {
				return
			}
			err = h.send(conn, msgAlert, a)
		case rows, ok := <-datasets:
			if !ok {
				return
			}
			err = h.send(conn, msgDataset, datasetSummary{
				Rows:       len(rows),
				Statistics: h.services.Dataset.Statistics(),
				GreenIndex: h.services.Dataset.GreenIndex(),
			})
		}
		if err != nil {
			if h.log != nil {
				h.log.Infow("ws_write_failed", "err", err)
			}
			return
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds,
// falling back to the configured totals interval.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return h.totalsEvery
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

func (h *Handler) send(conn *websocket.Conn, typ string, data interface{}) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(wsEnvelope{Type: typ, Data: data})
}
