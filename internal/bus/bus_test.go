package bus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingConn struct {
	writes [][]byte
	read   []byte
	err    error
}

func (c *recordingConn) Tx(w, r []byte) error {
	if c.err != nil {
		return c.err
	}
	c.writes = append(c.writes, append([]byte(nil), w...))
	copy(r, c.read)
	return nil
}

func TestDevice_ReadReg16_LittleEndian(t *testing.T) {
	// GIVEN
	conn := &recordingConn{read: []byte{0x34, 0x12}}
	d := NewDevice(conn, 0x39)

	// WHEN
	value, err := d.ReadReg16(0xAC)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x1234), value)
	assert.Equal(t, [][]byte{{0xAC}}, conn.writes)
}

func TestDevice_ReadReg8(t *testing.T) {
	conn := &recordingConn{read: []byte{0x50}}
	d := NewDevice(conn, 0x29)

	value, err := d.ReadReg8(0xB2)

	assert.NoError(t, err)
	assert.Equal(t, byte(0x50), value)
}

func TestDevice_Writes(t *testing.T) {
	// GIVEN
	conn := &recordingConn{}
	d := NewDevice(conn, 0x10)

	// WHEN
	assert.NoError(t, d.WriteReg8(0x04, 0x02))
	assert.NoError(t, d.WriteReg16(0x00, 0x0800))
	assert.NoError(t, d.WriteCommand(0x21))

	// THEN
	assert.Equal(t, [][]byte{
		{0x04, 0x02},
		{0x00, 0x00, 0x08},
		{0x21},
	}, conn.writes)
}

func TestDevice_ErrorsAreWrapped(t *testing.T) {
	cause := errors.New("remote I/O error")
	d := NewDevice(&recordingConn{err: cause}, 0x70)

	_, err := d.ReadReg8(0x00)
	assert.ErrorIs(t, err, cause)
	_, err = d.ReadReg16(0x00)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, d.WriteReg8(0x00, 1), cause)
	assert.ErrorIs(t, d.WriteReg16(0x00, 1), cause)
	assert.ErrorIs(t, d.WriteCommand(0x81), cause)
}
