package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/poboll/tictactoe-arm/internal/entity"
	"github.com/poboll/tictactoe-arm/internal/repository/storage/sqlite"
)

type ArchiveRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Session, error)
}

type dbArchive struct {
	storage *sqlite.Storage
}

func NewArchiveRepository(storage *sqlite.Storage) ArchiveRepository {
	return &dbArchive{
		storage: storage,
	}
}

// Save writes one completed session into the games table.
func (that *dbArchive) Save(ctx context.Context, session *entity.Session) error {
	boardJSON, err := json.Marshal(session.Board)
	if err != nil {
		return fmt.Errorf("could not marshal board: %w", err)
	}

	query := `INSERT OR REPLACE INTO games (id, board, result, self_moves, opponent_moves, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = that.storage.Connection.ExecContext(ctx, query,
		session.ID,
		string(boardJSON),
		session.Result,
		session.SelfMoves,
		session.OpponentMoves,
		session.StartedAt,
		session.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert game record: %w", err)
	}

	return nil
}

func (that *dbArchive) ListRecent(ctx context.Context, limit int) ([]*entity.Session, error) {
	query := `SELECT id, board, result, self_moves, opponent_moves, started_at, finished_at
		FROM games ORDER BY finished_at DESC LIMIT ?`

	rows, err := that.storage.Connection.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game records: %w", err)
	}
	defer rows.Close()

	var sessions []*entity.Session

	for rows.Next() {
		var record entity.Session
		var boardJSON string

		if err = rows.Scan(&record.ID, &boardJSON, &record.Result, &record.SelfMoves,
			&record.OpponentMoves, &record.StartedAt, &record.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game record: %w", err)
		}

		if err = json.Unmarshal([]byte(boardJSON), &record.Board); err != nil {
			return nil, fmt.Errorf("failed to unmarshal board: %w", err)
		}

		record.Status = entity.StatusFinished
		sessions = append(sessions, &record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read game records: %w", err)
	}

	return sessions, nil
}
