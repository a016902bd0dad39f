package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/poboll/tictactoe-arm/internal/entity"
)

const recentGamesLimit = 20

type archiveRepo interface {
	ListRecent(ctx context.Context, limit int) ([]*entity.Session, error)
}

func newGamesHandler(logger *slog.Logger, archive archiveRepo) http.HandlerFunc {
	log := logger.With("component", "rest")

	return func(w http.ResponseWriter, r *http.Request) {
		games, err := archive.ListRecent(r.Context(), recentGamesLimit)
		if err != nil {
			log.Error("failed to list archived games", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if games == nil {
			games = []*entity.Session{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err = json.NewEncoder(w).Encode(games); err != nil {
			log.Error("failed to encode games", "error", err)
		}
	}
}
