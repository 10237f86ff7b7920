package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yanxingzhi/event-form-multi/internal/gauth"
	"github.com/yanxingzhi/event-form-multi/internal/metrics"
	"github.com/yanxingzhi/event-form-multi/internal/models"
	"github.com/yanxingzhi/event-form-multi/internal/sheets"
)

// Every handler runs one pass of
//
//	parse -> validate -> sign JWT -> exchange token -> sheet call -> [notify] -> respond
//
// and stops at the first failing step. No step is retried. Validation runs
// before any outbound call.

type lookupResponse struct {
	Success bool       `json:"success"`
	Found   bool       `json:"found"`
	Row     models.Row `json:"row"`
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key, match := q.Get("a"), q.Get("e")
	if key == "" || match == "" {
		writeError(w, http.StatusBadRequest, ErrMissingParameter.Error())
		return
	}

	ctx := r.Context()
	sh, err := s.openSheet(ctx, gauth.ScopeSpreadsheetsReadOnly)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	cols := sheets.MatchColumns{Key: s.cfg.LookupKeyColumn, Match: s.cfg.LookupMatchColumn}
	res, err := sh.Lookup(ctx, s.cfg.SheetRange, cols, key, match)
	metrics.ObserveCall(metrics.CallSheetRead, err)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, lookupResponse{Success: true, Found: res.Found, Row: res.Row})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var sub models.Submission
	if err := decodeBody(w, r, &sub); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	sh, err := s.openSheet(ctx, gauth.ScopeSpreadsheets)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	err = sh.AppendSubmission(ctx, s.cfg.SheetRange, sub)
	metrics.ObserveCall(metrics.CallSheetAppend, err)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeText(w, http.StatusOK, "OK")
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := decodeBody(w, r, &reg); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if missing := reg.Missing(); len(missing) > 0 {
		zerolog.Ctx(r.Context()).Info().Strs("missing", missing).Msg("registration rejected")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
		return
	}

	ctx := r.Context()
	sh, err := s.openSheet(ctx, gauth.ScopeSpreadsheets)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	err = sh.AppendRegistration(ctx, s.cfg.RegistrationRange, reg)
	metrics.ObserveCall(metrics.CallSheetAppend, err)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.confirm(r, reg)
	writeText(w, http.StatusOK, "OK")
}

// confirm hands the confirmation to the dispatcher. Its outcome never
// reaches the registrant.
func (s *Server) confirm(r *http.Request, reg models.Registration) {
	if s.confirmer == nil {
		return
	}
	logger := zerolog.Ctx(r.Context())
	if strings.TrimSpace(reg.UserID) == "" {
		logger.Info().Str("activity_id", reg.ActivityID).Msg("registration without userId, confirmation skipped")
		return
	}
	userID, activityID := reg.UserID, reg.ActivityID
	s.dispatch.Go("confirm:"+activityID, func(ctx context.Context) error {
		return s.confirmer.Confirm(logger.WithContext(ctx), userID, activityID)
	})
}

// fail writes the error response. A rejected sheet write surfaces the
// upstream text as is; everything else becomes a generic JSON error.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")

	var opErr *sheets.OperationError
	if errors.As(err, &opErr) && opErr.Op == "append" {
		writeText(w, http.StatusInternalServerError, opErr.Detail())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
