package testingutils

import (
	"errors"
	"fmt"
)

var ErrBus = errors.New("simulated bus failure")

// BusWrite is a single write recorded by FakeBus.
type BusWrite struct {
	Reg   byte
	Value uint16
	Word  bool
	// Command is set for WriteCommand calls, Reg holds the command byte.
	Command bool
}

func (w BusWrite) String() string {
	switch {
	case w.Command:
		return fmt.Sprintf("cmd 0x%02x", w.Reg)
	case w.Word:
		return fmt.Sprintf("0x%02x=0x%04x", w.Reg, w.Value)
	default:
		return fmt.Sprintf("0x%02x=0x%02x", w.Reg, w.Value)
	}
}

// FakeBus is an in memory bus.ByteBus.
type FakeBus struct {
	Regs8  map[byte]byte
	Regs16 map[byte]uint16
	Writes []BusWrite

	// FailReads and FailWrites make every matching call return ErrBus.
	FailReads  bool
	FailWrites bool
}

func NewFakeBus() *FakeBus {
	return &FakeBus{
		Regs8:  map[byte]byte{},
		Regs16: map[byte]uint16{},
	}
}

func (b *FakeBus) ReadReg8(reg byte) (byte, error) {
	if b.FailReads {
		return 0, ErrBus
	}
	return b.Regs8[reg], nil
}

func (b *FakeBus) ReadReg16(reg byte) (uint16, error) {
	if b.FailReads {
		return 0, ErrBus
	}
	return b.Regs16[reg], nil
}

func (b *FakeBus) WriteReg8(reg byte, value byte) error {
	if b.FailWrites {
		return ErrBus
	}
	b.Regs8[reg] = value
	b.Writes = append(b.Writes, BusWrite{Reg: reg, Value: uint16(value)})
	return nil
}

func (b *FakeBus) WriteReg16(reg byte, value uint16) error {
	if b.FailWrites {
		return ErrBus
	}
	b.Regs16[reg] = value
	b.Writes = append(b.Writes, BusWrite{Reg: reg, Value: value, Word: true})
	return nil
}

func (b *FakeBus) WriteCommand(cmd byte) error {
	if b.FailWrites {
		return ErrBus
	}
	b.Writes = append(b.Writes, BusWrite{Reg: cmd, Command: true})
	return nil
}

// Commands returns the command bytes sent so far.
func (b *FakeBus) Commands() []byte {
	var result []byte
	for _, w := range b.Writes {
		if w.Command {
			result = append(result, w.Reg)
		}
	}
	return result
}
