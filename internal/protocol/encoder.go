package protocol

import "github.com/poboll/tictactoe-arm/internal/entity"

// Frame layout: two header bytes, three ASCII digits (command type, origin,
// target), one trailer byte. The arm firmware resynchronizes on the header
// pair, so the constants must never change.
const (
	FrameHeaderHigh byte = 0xAA
	FrameHeaderLow  byte = 0x55
	FrameTrailer    byte = 0x9A
)

const FrameSize = 6

type Frame [FrameSize]byte

// Encode packs a command into its wire frame. Every command value is
// representable, so encoding cannot fail.
func Encode(cmd entity.Command) Frame {
	return Frame{
		FrameHeaderHigh,
		FrameHeaderLow,
		cmd.Type,
		digit(cmd.Origin),
		digit(cmd.Target),
		FrameTrailer,
	}
}

// digit maps 0-9 to its ASCII digit; origin and target are board indices or
// move ordinals, both single-digit by construction.
func digit(n int) byte {
	return '0' + byte(n%10)
}
