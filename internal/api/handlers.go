package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/naturelab/lifelist/pkg/lserr"
	"github.com/naturelab/lifelist/pkg/menus"
)

// createSessionRequest runs one query and opens a menu session over its
// result. Unset display fields fall back to the server's defaults.
type createSessionRequest struct {
	Argument string `json:"argument"`
	Policy   string `json:"policy,omitempty"`
	PerPage  int    `json:"per_page,omitempty"`
	Sort     string `json:"sort,omitempty"`
	Order    string `json:"order,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
	Page      int    `json:"page"`
	LastPage  int    `json:"last_page"`
	Selected  int    `json:"selected"`
	TaxonID   int    `json:"taxon_id,omitempty"`
	Rendered  string `json:"rendered"`
}

type navRequest struct {
	Op  string `json:"op"`
	Arg int    `json:"arg,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), string(lserr.ErrCodeInvalidInput), http.StatusBadRequest)
		return
	}
	if req.Argument == "" {
		jsonError(w, "argument is required", string(lserr.ErrCodeInvalidQuery), http.StatusBadRequest)
		return
	}

	opts := s.defaults
	opts.Argument = req.Argument
	opts.Refresh = req.Refresh
	if req.Policy != "" {
		opts.Policy = req.Policy
	}
	if req.PerPage > 0 {
		opts.PerPage = req.PerPage
	}
	if req.Sort != "" {
		opts.Sort = req.Sort
	}
	if req.Order != "" {
		opts.Order = req.Order
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.jsonFault(w, err)
		return
	}

	sess := s.sessions.Create(menus.NewMenu(result.Renderer))
	s.log.Info("session created",
		"session", sess.ID,
		"query", result.Query.String(),
		"entries", result.Stats.EntryCount)

	s.writeSession(w, sess, http.StatusCreated)
}

func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.jsonFault(w, err)
		return
	}
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		jsonError(w, "page must be an integer", string(lserr.ErrCodeInvalidInput), http.StatusBadRequest)
		return
	}

	sess.Lock()
	defer sess.Unlock()
	if err := sess.Menu.Jump(page); err != nil {
		s.jsonFault(w, err)
		return
	}
	s.writeSession(w, sess, http.StatusOK)
}

func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.jsonFault(w, err)
		return
	}
	var req navRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), string(lserr.ErrCodeInvalidInput), http.StatusBadRequest)
		return
	}

	sess.Lock()
	defer sess.Unlock()
	switch req.Op {
	case "next":
		sess.Menu.Next()
	case "prev":
		sess.Menu.Prev()
	case "page":
		err = sess.Menu.Jump(req.Arg)
	case "select":
		err = sess.Menu.Select(req.Arg)
	default:
		jsonError(w, "unknown op: "+req.Op, string(lserr.ErrCodeInvalidInput), http.StatusBadRequest)
		return
	}
	if err != nil {
		s.jsonFault(w, err)
		return
	}
	s.writeSession(w, sess, http.StatusOK)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.sessions.Delete(chi.URLParam(r, "sessionID"))
	w.WriteHeader(http.StatusNoContent)
}

// writeSession renders the session's current page into a JSON envelope.
// Callers hold the session lock.
func (s *Server) writeSession(w http.ResponseWriter, sess *menus.Session, status int) {
	rendered, err := sess.Menu.Format(true)
	if err != nil {
		s.jsonFault(w, err)
		return
	}
	resp := sessionResponse{
		SessionID: sess.ID,
		Page:      sess.Menu.Page(),
		LastPage:  sess.Menu.Renderer().Pager().LastPage(),
		Selected:  sess.Menu.Selected(),
		TaxonID:   sess.Menu.SelectedTaxonID(),
		Rendered:  rendered,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// jsonFault maps a pipeline or navigation error to an HTTP status by its
// error code. User mistakes are 4xx; upstream trouble is 5xx.
func (s *Server) jsonFault(w http.ResponseWriter, err error) {
	var limited *lserr.RateLimitedError
	if errors.As(err, &limited) {
		if limited.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(limited.RetryAfter))
		}
		jsonError(w, limited.Error(), string(lserr.ErrCodeRateLimited), http.StatusTooManyRequests)
		return
	}

	code := lserr.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case lserr.ErrCodeInvalidInput, lserr.ErrCodeInvalidQuery, lserr.ErrCodeInvalidRank,
		lserr.ErrCodeInvalidPolicy, lserr.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case lserr.ErrCodeNotFound, lserr.ErrCodeTaxonNotFound, lserr.ErrCodeSessionNotFound:
		status = http.StatusNotFound
	case lserr.ErrCodePageOutOfRange, lserr.ErrCodeSelectionOutOfRange,
		lserr.ErrCodeEmptyResult, lserr.ErrCodeRootNotFound:
		status = http.StatusUnprocessableEntity
	case lserr.ErrCodeRateLimited:
		status = http.StatusTooManyRequests
	case lserr.ErrCodeNetwork, lserr.ErrCodeTimeout:
		status = http.StatusBadGateway
	}
	if status >= 500 {
		s.log.Error("request failed", "code", code, "err", err)
	}
	jsonError(w, lserr.UserMessage(err), string(code), status)
}

func jsonError(w http.ResponseWriter, msg, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg, "code": code})
}
