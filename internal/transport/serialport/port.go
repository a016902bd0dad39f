package serialport

import (
	"fmt"
	"io"
	"log/slog"

	"go.bug.st/serial"

	"github.com/poboll/tictactoe-arm/internal/protocol"
)

// Port is the serial link to the arm controller.
type Port struct {
	logger *slog.Logger
	conn   serial.Port
}

func Open(logger *slog.Logger, device string, baudRate int) (*Port, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
	}

	conn, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", device, err)
	}

	return &Port{
		logger: logger.With("component", "serial"),
		conn:   conn,
	}, nil
}

// WriteFrame sends one command frame down the link.
func (that *Port) WriteFrame(frame protocol.Frame) error {
	n, err := that.conn.Write(frame[:])
	if err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	if n != len(frame) {
		return fmt.Errorf("failed to write frame: %w", io.ErrShortWrite)
	}

	that.logger.Debug("frame sent", "frame", fmt.Sprintf("% X", frame[:]))

	return nil
}

func (that *Port) Close() error {
	if err := that.conn.Close(); err != nil {
		return fmt.Errorf("failed to close serial port: %w", err)
	}

	return nil
}
