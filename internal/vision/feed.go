package vision

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/poboll/tictactoe-arm/internal/apperror"
	"github.com/poboll/tictactoe-arm/internal/entity"
)

// Stone colors as the vision process reports them.
const (
	StoneWhite = "W"
	StoneBlack = "B"
)

// snapshotMessage is one line of the vision process's JSON stream: the nine
// detected stones in row-major order, empty string for a free cell.
type snapshotMessage struct {
	Cells [9]string `json:"cells"`
}

// Feed receives the vision process's snapshot stream over TCP and keeps the
// most recent reading. It translates stone colors to side marks using the
// configured self color and undoes the camera mount rotation, so consumers
// only ever see canonical boards.
type Feed struct {
	logger       *slog.Logger
	selfStone    string
	quarterTurns int

	mu       sync.RWMutex
	latest   entity.Board
	received bool
}

func NewFeed(logger *slog.Logger, selfColor string, quarterTurns int) *Feed {
	selfStone := StoneBlack
	if selfColor == "white" {
		selfStone = StoneWhite
	}

	return &Feed{
		logger:       logger.With("component", "vision"),
		selfStone:    selfStone,
		quarterTurns: quarterTurns,
	}
}

// Listen accepts vision process connections on the given port until the
// context is canceled. Only one snapshot stream is expected at a time, but a
// reconnecting process is always welcome.
func (that *Feed) Listen(ctx context.Context, port string) error {
	var lc net.ListenConfig

	listener, err := lc.Listen(ctx, "tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen for vision feed: %w", err)
	}

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to accept vision connection: %w", err)
		}

		that.logger.Info("vision feed connected", "remote", conn.RemoteAddr().String())
		go that.handleConn(conn)
	}
}

// handleConn consumes one JSON-line snapshot stream.
func (that *Feed) handleConn(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var message snapshotMessage
		if err := json.Unmarshal(scanner.Bytes(), &message); err != nil {
			that.logger.Warn("failed to unmarshal snapshot", "error", err)
			continue
		}

		board, err := that.toBoard(message)
		if err != nil {
			that.logger.Warn("dropping malformed snapshot", "error", err)
			continue
		}

		that.mu.Lock()
		that.latest = board
		that.received = true
		that.mu.Unlock()
	}

	if err := scanner.Err(); err != nil {
		that.logger.Warn("vision feed read error", "error", err)
	}

	that.logger.Info("vision feed disconnected")
}

// Snapshot returns the most recent raw board. The session controller paces
// calls to this as its sampling tick.
func (that *Feed) Snapshot(_ context.Context) (entity.Board, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if !that.received {
		return entity.Board{}, apperror.ErrNoSnapshot
	}

	return that.latest, nil
}

func (that *Feed) toBoard(message snapshotMessage) (entity.Board, error) {
	var board entity.Board

	for i, stone := range message.Cells {
		switch stone {
		case "":
			board[i] = entity.EmptyCell
		case that.selfStone:
			board[i] = entity.MarkSelf
		case StoneWhite, StoneBlack:
			board[i] = entity.MarkOpponent
		default:
			return entity.Board{}, fmt.Errorf("unknown stone %q in cell %d", stone, i)
		}
	}

	return Rotate(board, that.quarterTurns), nil
}
