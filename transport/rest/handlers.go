package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

const maxBodyBytes = 1 << 10

var errCellRequired = errors.New("cell is required")

type moveRequest struct {
	Cell *int `json:"cell"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.uSession.NewSession(r.Context())
	if err != nil {
		that.sendError(w, r, err)
		return
	}

	that.sendJSON(w, http.StatusCreated, session)
}

func (that *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.uSession.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		that.sendError(w, r, err)
		return
	}

	that.sendJSON(w, http.StatusOK, session)
}

func (that *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Cell == nil {
		that.sendJSON(w, http.StatusBadRequest, errorResponse{Error: errCellRequired.Error()})
		return
	}

	session, err := that.uSession.MakeMove(r.Context(), r.PathValue("id"), *req.Cell)
	if err != nil {
		that.sendError(w, r, err)
		return
	}

	that.sendJSON(w, http.StatusOK, session)
}

func (that *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	session, err := that.uSession.ResetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		that.sendError(w, r, err)
		return
	}

	that.sendJSON(w, http.StatusOK, session)
}

func (that *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if err := that.uSession.EndSession(r.Context(), r.PathValue("id")); err != nil {
		that.sendError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// sendError - maps use case errors to HTTP statuses. Rejected moves are client
// errors; anything unknown is logged and hidden behind a 500.
func (that *Server) sendError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		status  int
		message string
	)

	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		status, message = http.StatusNotFound, apperror.ErrSessionNotFound.Error()
	case errors.Is(err, apperror.ErrSessionIDRequired):
		status, message = http.StatusBadRequest, apperror.ErrSessionIDRequired.Error()
	case errors.Is(err, tictactoe.ErrInvalidCell):
		status, message = http.StatusBadRequest, tictactoe.ErrInvalidCell.Error()
	case errors.Is(err, tictactoe.ErrCellOccupied):
		status, message = http.StatusConflict, tictactoe.ErrCellOccupied.Error()
	case errors.Is(err, apperror.ErrGameFinished):
		status, message = http.StatusConflict, apperror.ErrGameFinished.Error()
	case errors.Is(err, apperror.ErrGameIsNotStarted):
		status, message = http.StatusConflict, apperror.ErrGameIsNotStarted.Error()
	case errors.Is(err, apperror.ErrConcurrentUpdate):
		status, message = http.StatusConflict, apperror.ErrConcurrentUpdate.Error()
	default:
		that.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		status, message = http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}

	that.sendJSON(w, status, errorResponse{Error: message})
}

func (that *Server) sendJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
