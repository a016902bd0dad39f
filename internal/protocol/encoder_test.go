package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poboll/tictactoe-arm/internal/entity"
)

func TestEncode_BlackMove(t *testing.T) {
	// Given: a black move command, first ordinal, target cell 0
	cmd := entity.Command{Type: entity.CommandBlackMove, Origin: 1, Target: 0}

	// When: encoded
	frame := Encode(cmd)

	// Then: the frame matches the documented example byte for byte
	assert.Equal(t, Frame{0xAA, 0x55, 0x32, 0x31, 0x30, 0x9A}, frame)
}

func TestEncode_WhiteMove(t *testing.T) {
	// Given: a white move command, second ordinal, target cell 8
	cmd := entity.Command{Type: entity.CommandWhiteMove, Origin: 2, Target: 8}

	frame := Encode(cmd)

	assert.Equal(t, Frame{0xAA, 0x55, '1', '2', '8', 0x9A}, frame)
}

func TestEncode_RetractionAlert(t *testing.T) {
	// Given: a retraction alert for a piece moved from cell 0 to cell 4
	cmd := entity.Command{Type: entity.CommandRetraction, Origin: 0, Target: 4}

	// When: encoded
	frame := Encode(cmd)

	// Then: the data bytes read "304" between header and trailer
	assert.Equal(t, Frame{0xAA, 0x55, '3', '0', '4', 0x9A}, frame)
}

func TestEncode_FramingConstants(t *testing.T) {
	// Given: any command
	frame := Encode(entity.Command{Type: entity.CommandCalibration, Origin: 7, Target: 7})

	// Then: header and trailer bytes frame the payload
	assert.Equal(t, FrameHeaderHigh, frame[0])
	assert.Equal(t, FrameHeaderLow, frame[1])
	assert.Equal(t, FrameTrailer, frame[FrameSize-1])
}
