package api

import (
	"errors"
	"net/http"

	"github.com/feltworks/casino-core/internal/games"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

const (
	errTypeInvalidBet    = "invalid_bet"
	errTypeInvalidAction = "invalid_action"
	errTypeBadRequest    = "bad_request"
	errTypeInternal      = "internal"
)

// writeGameError maps engine errors onto HTTP statuses: bad wagers are
// 422, out-of-turn actions 409, everything else 500.
func (s *Server) writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, games.ErrInvalidBet):
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Type: errTypeInvalidBet})
	case errors.Is(err, games.ErrInvalidAction):
		s.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Type: errTypeInvalidAction})
	default:
		s.logger.Error("request failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Type: errTypeInternal})
	}
}

func (s *Server) writeBadRequest(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: message, Type: errTypeBadRequest})
}
