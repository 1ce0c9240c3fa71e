package arc

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// trailerSize is the length of the big-endian symbol count
// at the end of a marshalled artifact.
const trailerSize = 4

// A Code is an arithmetic-coded bit sequence together with the number of
// source symbols it encodes. Bits are packed eight per byte, most
// significant bit first; the trailing byte is zero-padded.
type Code struct {
	data       []byte
	writeIndex int
	readIndex  int

	// Chars is the number of source symbols encoded.
	// It is the only out-of-band information the decoder gets,
	// and the only thing that tells it when to stop.
	Chars int
}

// AddBit appends a bit to the code.
func (c *Code) AddBit(bit int) {
	if c.writeIndex%8 == 0 {
		c.data = append(c.data, 0)
	}
	if bit != 0 {
		c.data[c.writeIndex/8] |= 0x80 >> uint(c.writeIndex%8)
	}
	c.writeIndex++
}

// Bit returns the bit at absolute index i.
func (c *Code) Bit(i int) int {
	if c.data[i/8]&(0x80>>uint(i%8)) != 0 {
		return 1
	}
	return 0
}

// NextBit consumes and returns the next unread bit.
// Once the buffer is exhausted it returns 0; the decoder stops on the
// symbol count well before those zeros could matter.
func (c *Code) NextBit() int {
	if c.readIndex >= len(c.data)*8 {
		return 0
	}
	c.readIndex++
	return c.Bit(c.readIndex - 1)
}

// Len returns the number of bits written to the code.
func (c *Code) Len() int {
	return c.writeIndex
}

// Size returns the size in bytes of the marshalled artifact.
func (c *Code) Size() int {
	return len(c.data) + trailerSize
}

// MarshalBinary serializes the code as its packed bit bytes followed by
// the symbol count as a 4-byte big-endian integer.
func (c *Code) MarshalBinary() ([]byte, error) {
	buf := make([]byte, len(c.data)+trailerSize)
	copy(buf, c.data)
	binary.BigEndian.PutUint32(buf[len(c.data):], uint32(c.Chars))
	return buf, nil
}

// ParseCode parses a marshalled artifact.
// It fails if raw is too short to hold the symbol count trailer.
// It cannot detect corruption beyond that: a damaged payload still
// parses and decodes, just not to the original bytes.
func ParseCode(raw []byte) (*Code, error) {
	if len(raw) < trailerSize {
		return nil, errors.Errorf("artifact too short: %d bytes", len(raw))
	}
	payload := raw[:len(raw)-trailerSize]
	code := &Code{
		data:       payload,
		writeIndex: len(payload) * 8,
		Chars:      int(binary.BigEndian.Uint32(raw[len(raw)-trailerSize:])),
	}
	return code, nil
}
