// Package segment maps decimal digits to 7-segment display patterns.
//
// Bit 0..6 correspond to segments a..g:
//
//	 -- a --
//	f       b
//	 -- g --
//	e       c
//	 -- d --
package segment

import "github.com/luxclock/luxclock/internal/clock"

const (
	segA byte = 1 << iota
	segB
	segC
	segD
	segE
	segF
	segG

	// Blank turns all segments of a digit off.
	Blank byte = 0x00
)

var digits = [10]byte{
	segA | segB | segC | segD | segE | segF,        // 0x3F
	segB | segC,                                    // 0x06
	segA | segB | segD | segE | segG,               // 0x5B
	segA | segB | segC | segD | segG,               // 0x4F
	segB | segC | segF | segG,                      // 0x66
	segA | segC | segD | segF | segG,               // 0x6D
	segA | segC | segD | segE | segF | segG,        // 0x7D
	segA | segB | segC,                             // 0x07
	segA | segB | segC | segD | segE | segF | segG, // 0x7F
	segA | segB | segC | segD | segF | segG,        // 0x6F
}

// Encode returns the segment pattern of digit, or Blank for anything outside 0..9.
func Encode(digit int) byte {
	if digit < 0 || digit >= len(digits) {
		return Blank
	}
	return digits[digit]
}

// EncodeClock returns the patterns for HH:MM, most significant digit first.
func EncodeClock(t clock.ClockTime) [4]byte {
	return [4]byte{
		Encode(t.Hour / 10),
		Encode(t.Hour % 10),
		Encode(t.Minute / 10),
		Encode(t.Minute % 10),
	}
}
