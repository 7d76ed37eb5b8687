// Package display drives the 4 digit 7-segment clock display.
package display

import (
	"errors"
	"fmt"

	"github.com/luxclock/luxclock/internal/bus"
	"github.com/luxclock/luxclock/internal/ui"
)

const (
	DefaultAddress = 0x70

	// MaxBrightness is the highest value of the dimming register.
	MaxBrightness = 15
)

// Display shows HH:MM and controls the brightness.
type Display interface {
	// Init turns the display (and its oscillator) on or off.
	Init(on bool) error
	// Show writes the four digit codes. The brightness register is only
	// written when setBrightness is true.
	Show(codes [4]byte, brightness int, setBrightness bool) error
}

// HT16K33 register and command layout of the 4 digit backpack
const (
	cmdOscillator = 0x20
	cmdDisplay    = 0x80
	cmdDimming    = 0xE0

	colonAddress = 0x04
	colonOn      = 0x02
)

// display RAM address of each digit, left to right; the colon sits in between
var digitAddresses = [4]byte{0x00, 0x02, 0x06, 0x08}

type HT16K33 struct {
	bus bus.ByteBus
}

func NewHT16K33(b bus.ByteBus) *HT16K33 {
	return &HT16K33{bus: b}
}

func (d *HT16K33) Init(on bool) error {
	var onoff byte
	if on {
		onoff = 1
	}

	var errs []error
	if err := d.bus.WriteCommand(cmdOscillator | onoff); err != nil {
		errs = append(errs, fmt.Errorf("oscillator: %w", err))
	}
	if err := d.bus.WriteCommand(cmdDisplay | onoff); err != nil {
		errs = append(errs, fmt.Errorf("display switch: %w", err))
	}
	if on {
		if err := d.bus.WriteReg8(colonAddress, colonOn); err != nil {
			errs = append(errs, fmt.Errorf("colon: %w", err))
		}
	}
	ui.Debug("Display switched on=%t", on)
	return errors.Join(errs...)
}

func (d *HT16K33) Show(codes [4]byte, brightness int, setBrightness bool) error {
	var errs []error
	for i, code := range codes {
		if err := d.bus.WriteReg8(digitAddresses[i], code); err != nil {
			errs = append(errs, fmt.Errorf("digit %d: %w", i, err))
		}
	}
	if setBrightness {
		if err := d.bus.WriteCommand(cmdDimming | clampBrightness(brightness)); err != nil {
			errs = append(errs, fmt.Errorf("brightness: %w", err))
		}
	}
	return errors.Join(errs...)
}

func clampBrightness(level int) byte {
	if level < 0 {
		return 0
	}
	if level > MaxBrightness {
		return MaxBrightness
	}
	return byte(level)
}
