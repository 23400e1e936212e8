package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/carson-networks/voice-ledger/internal/logging"
)

// Pinger is satisfied by *sql.DB. The in-memory store has nothing to ping.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	Store   string
	DB      Pinger
	Timeout time.Duration
}

type response struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

func NewHandler(store string, db Pinger) Handler {
	return Handler{Store: store, DB: db, Timeout: 2 * time.Second}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	resp := response{Status: "ok", Store: h.Store}
	code := http.StatusOK
	var pingErr error
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(req.Context(), h.Timeout)
		defer cancel()

		endTimer := logData.AddTiming("pingMs")
		pingErr = h.DB.PingContext(ctx)
		endTimer()
		if pingErr != nil {
			resp.Status = "unavailable"
			code = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		return err
	}
	return pingErr
}
