package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"finlens/internal/core"
	"finlens/internal/log"
	"finlens/internal/reports"
)

// refTimeLayouts are the accepted formats of the ?date query parameter,
// tried in order.
var refTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("cannot encode response", log.FieldError, err)
	}
}

// writeError maps the engine's error taxonomy onto HTTP statuses:
// malformed caller input is 400, structurally unusable source data is
// 422, everything else is 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		invalid    *core.InvalidArgumentError
		schema     *core.SchemaError
		dataFormat *core.DataFormatError
	)

	status := http.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.As(err, &invalid):
		status = http.StatusBadRequest
		msg = invalid.Error()
	case errors.As(err, &schema):
		status = http.StatusUnprocessableEntity
		msg = schema.Error()
	case errors.As(err, &dataFormat):
		status = http.StatusUnprocessableEntity
		msg = dataFormat.Error()
	case errors.Is(err, core.ErrEmptyTable):
		status = http.StatusUnprocessableEntity
		msg = err.Error()
	}

	requestID := log.RequestIDFromContext(r.Context())
	if status == http.StatusInternalServerError {
		s.log.Error("request failed",
			log.FieldRequestID, requestID,
			log.FieldPath, r.URL.Path,
			log.FieldError, err)
	}
	s.writeJSON(w, status, errorResponse{Error: msg, RequestID: requestID})
}

// parseRefTime reads the optional ?date parameter, defaulting to the
// server clock.
func (s *Server) parseRefTime(r *http.Request) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		return s.now(), nil
	}
	for _, layout := range refTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &core.InvalidArgumentError{
		Name:   "date",
		Value:  raw,
		Reason: "unrecognized date format",
	}
}

func (s *Server) handleHomePage(w http.ResponseWriter, r *http.Request) {
	ref, err := s.parseRefTime(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	page, err := s.reporter.HomePage(r.Context(), ref)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	ref, err := s.parseRefTime(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	period := core.PeriodMonth
	if raw := strings.TrimSpace(r.URL.Query().Get("period")); raw != "" {
		p, ok := core.ParsePeriod(raw)
		if !ok {
			s.writeError(w, r, &core.InvalidArgumentError{
				Name:   "period",
				Value:  raw,
				Reason: "must be one of W, M, Y, ALL",
			})
			return
		}
		period = p
	}

	summary, err := s.reporter.EventSummary(r.Context(), ref, period)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleSpending(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		s.writeError(w, r, &core.InvalidArgumentError{
			Name:   "category",
			Reason: "parameter is required",
		})
		return
	}

	asOf, err := s.parseRefTime(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	windowDays := reports.DefaultWindowDays
	if raw := strings.TrimSpace(r.URL.Query().Get("days")); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d <= 0 {
			s.writeError(w, r, &core.InvalidArgumentError{
				Name:   "days",
				Value:  raw,
				Reason: "must be a positive integer",
			})
			return
		}
		windowDays = d
	}

	report, err := s.reporter.Spending(r.Context(), category, asOf, windowDays)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleCashback(w http.ResponseWriter, r *http.Request) {
	year, err := intParam(r, "year", 1970, 9999)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	month, err := intParam(r, "month", 1, 12)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	report, err := s.reporter.Cashback(r.Context(), year, time.Month(month))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// personalTransfer is the wire shape of one personal transfer row.
type personalTransfer struct {
	Date        string          `json:"date"`
	Amount      json.RawMessage `json:"amount"`
	Description string          `json:"description"`
}

func (s *Server) handlePersonalTransfers(w http.ResponseWriter, r *http.Request) {
	txs, err := s.reporter.PersonalTransfers(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]personalTransfer, 0, len(txs))
	for _, tx := range txs {
		date := ""
		if !tx.OperationDate.IsZero() {
			date = tx.OperationDate.Format(core.DateLayout)
		}
		amt, err := tx.OperationAmount.MarshalJSON()
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		out = append(out, personalTransfer{
			Date:        date,
			Amount:      amt,
			Description: tx.Description,
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func intParam(r *http.Request, name string, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, &core.InvalidArgumentError{Name: name, Reason: "parameter is required"}
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min || v > max {
		return 0, &core.InvalidArgumentError{
			Name:   name,
			Value:  raw,
			Reason: "must be an integer in [" + strconv.Itoa(min) + ", " + strconv.Itoa(max) + "]",
		}
	}
	return v, nil
}
