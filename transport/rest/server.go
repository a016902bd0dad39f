package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Start serves the operator surface: a liveness probe, the live session
// state read back from the repository, and the finished-game archive.
func Start(logger *slog.Logger, port string, sessions sessionRepo, archive archiveRepo) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", pingHandler)
	mux.HandleFunc("/status", newStatusHandler(logger, sessions))
	mux.HandleFunc("/games", newGamesHandler(logger, archive))

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
