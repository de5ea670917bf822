package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/xtding233/keno-backend/internal/keno"
	"github.com/xtding233/keno-backend/internal/logger"
	"github.com/xtding233/keno-backend/internal/session"
)

type playReq struct {
	Numbers []int `json:"numbers"`
	Bet     int64 `json:"bet"`
}

type playResp struct {
	Round   session.RoundView `json:"round"`
	Balance int64             `json:"balance"`
}

type errResp struct {
	Err string `json:"err"`
}

type paytableRow struct {
	Spots int            `json:"spots"`
	Lines []keno.PayLine `json:"lines"`
}

type Handler struct {
	sessions *session.Manager
}

// NewRouter wires the HTTP surface on top of a session manager.
func NewRouter(m *session.Manager) http.Handler {
	h := &Handler{sessions: m}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/paytable", h.handlePaytable)
	r.Get("/rtp", h.handleRTP)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.handleOpen)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Delete("/", h.handleClose)
			r.Post("/play", h.handlePlay)
			r.Get("/history", h.handleHistory)
			r.Post("/reset", h.handleReset)
		})
	})
	return r
}

func (h *Handler) handleOpen(w http.ResponseWriter, _ *http.Request) {
	s := h.sessions.Open()
	writeJSON(w, http.StatusCreated, s.View())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

func (h *Handler) handleClose(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Close(chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req playReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Err: "invalid body"})
		return
	}
	id := chi.URLParam(r, "id")
	round, err := h.sessions.Play(id, req.Numbers, req.Bet)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playResp{Round: round.View(), Balance: round.BalanceAfter})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	rounds := s.History()
	out := make([]session.RoundView, 0, len(rounds))
	for _, rd := range rounds {
		out = append(out, rd.View())
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.Reset()
	writeJSON(w, http.StatusOK, s.View())
}

// GET /paytable?spots=&bet=
// Without spots: every spot count. bet defaults to 1.
func (h *Handler) handlePaytable(w http.ResponseWriter, r *http.Request) {
	table := h.sessions.Engine().Table()

	bet, ok, msg := parseInt(r, "bet")
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
		return
	}
	if !ok {
		bet = 1
	}
	if bet <= 0 {
		writeJSON(w, http.StatusBadRequest, errResp{Err: "bet must be positive"})
		return
	}
	spots, ok, msg := parseInt(r, "spots")
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
		return
	}
	if ok {
		if spots < 1 || spots > keno.MaxSpots {
			writeJSON(w, http.StatusBadRequest, errResp{Err: "spots must be 1..10"})
			return
		}
		writeJSON(w, http.StatusOK, paytableRow{Spots: int(spots), Lines: table.Paying(int(spots), bet)})
		return
	}
	rows := make([]paytableRow, 0, keno.MaxSpots)
	for n := 1; n <= keno.MaxSpots; n++ {
		rows = append(rows, paytableRow{Spots: n, Lines: table.Paying(n, bet)})
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) handleRTP(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, keno.ReturnTable(h.sessions.Engine().Table()))
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return nil, false
	}
	return s, true
}

func parseInt(r *http.Request, key string) (int64, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, keno.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, keno.ErrInvalidRange),
		errors.Is(err, keno.ErrDuplicateNumber),
		errors.Is(err, keno.ErrTooManySelections),
		errors.Is(err, keno.ErrEmptySelection),
		errors.Is(err, keno.ErrInvalidBet),
		errors.Is(err, session.ErrBetOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeErr(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.Error("Request failed", "err", err)
	}
	writeJSON(w, code, errResp{Err: err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"dur", time.Since(start),
			"req_id", middleware.GetReqID(r.Context()),
		)
	})
}
