package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/poboll/tictactoe-arm/internal/apperror"
	"github.com/poboll/tictactoe-arm/internal/entity"
)

type sessionRepo interface {
	GetCurrent(ctx context.Context) (*entity.Session, error)
}

func newStatusHandler(logger *slog.Logger, sessions sessionRepo) http.HandlerFunc {
	log := logger.With("component", "rest")

	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessions.GetCurrent(r.Context())

		if errors.Is(err, apperror.ErrSessionNotFound) {
			http.Error(w, "no session yet", http.StatusNotFound)
			return
		}

		if err != nil {
			log.Error("failed to get current session", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err = json.NewEncoder(w).Encode(session); err != nil {
			log.Error("failed to encode session", "error", err)
		}
	}
}
