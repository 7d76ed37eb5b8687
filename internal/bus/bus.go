// Package bus provides register level access to I2C devices.
package bus

import (
	"encoding/binary"
	"fmt"

	"github.com/luxclock/luxclock/internal/ui"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// ByteBus is a single device on the bus, addressed by its registers.
// Register semantics follow the SMBus byte/word data commands; words are
// little endian.
type ByteBus interface {
	ReadReg8(reg byte) (byte, error)
	ReadReg16(reg byte) (uint16, error)
	WriteReg8(reg byte, value byte) error
	WriteReg16(reg byte, value uint16) error
	// WriteCommand sends a single command byte without payload.
	WriteCommand(cmd byte) error
}

// Adapter is an opened I2C adapter, e.g. /dev/i2c-1.
type Adapter struct {
	number int
	bus    i2c.BusCloser
}

// Open initializes the host drivers and opens the given adapter number.
func Open(adapter int) (*Adapter, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}
	b, err := i2creg.Open(fmt.Sprintf("%d", adapter))
	if err != nil {
		return nil, fmt.Errorf("open i2c adapter %d: %w", adapter, err)
	}
	ui.Debug("Opened I2C adapter %d: %s", adapter, b.String())
	return &Adapter{number: adapter, bus: b}, nil
}

// Device binds a device address on this adapter.
func (a *Adapter) Device(address uint16) ByteBus {
	return NewDevice(&i2c.Dev{Bus: a.bus, Addr: address}, address)
}

func (a *Adapter) Close() error {
	if err := a.bus.Close(); err != nil {
		return fmt.Errorf("close i2c adapter %d: %w", a.number, err)
	}
	return nil
}

// Txer is the part of periph's conn.Conn used by Device.
type Txer interface {
	Tx(w, r []byte) error
}

// Device implements ByteBus on top of a periph connection.
type Device struct {
	conn    Txer
	address uint16
}

func NewDevice(conn Txer, address uint16) *Device {
	return &Device{conn: conn, address: address}
}

func (d *Device) ReadReg8(reg byte) (byte, error) {
	var buf [1]byte
	if err := d.conn.Tx([]byte{reg}, buf[:]); err != nil {
		return 0, fmt.Errorf("read register 0x%02x of 0x%02x: %w", reg, d.address, err)
	}
	ui.Trace("bus 0x%02x: read8 0x%02x = 0x%02x", d.address, reg, buf[0])
	return buf[0], nil
}

func (d *Device) ReadReg16(reg byte) (uint16, error) {
	var buf [2]byte
	if err := d.conn.Tx([]byte{reg}, buf[:]); err != nil {
		return 0, fmt.Errorf("read word register 0x%02x of 0x%02x: %w", reg, d.address, err)
	}
	value := binary.LittleEndian.Uint16(buf[:])
	ui.Trace("bus 0x%02x: read16 0x%02x = 0x%04x", d.address, reg, value)
	return value, nil
}

func (d *Device) WriteReg8(reg byte, value byte) error {
	ui.Trace("bus 0x%02x: write8 0x%02x = 0x%02x", d.address, reg, value)
	if err := d.conn.Tx([]byte{reg, value}, nil); err != nil {
		return fmt.Errorf("write register 0x%02x of 0x%02x: %w", reg, d.address, err)
	}
	return nil
}

func (d *Device) WriteReg16(reg byte, value uint16) error {
	ui.Trace("bus 0x%02x: write16 0x%02x = 0x%04x", d.address, reg, value)
	w := []byte{reg, 0, 0}
	binary.LittleEndian.PutUint16(w[1:], value)
	if err := d.conn.Tx(w, nil); err != nil {
		return fmt.Errorf("write word register 0x%02x of 0x%02x: %w", reg, d.address, err)
	}
	return nil
}

func (d *Device) WriteCommand(cmd byte) error {
	ui.Trace("bus 0x%02x: command 0x%02x", d.address, cmd)
	if err := d.conn.Tx([]byte{cmd}, nil); err != nil {
		return fmt.Errorf("send command 0x%02x to 0x%02x: %w", cmd, d.address, err)
	}
	return nil
}
