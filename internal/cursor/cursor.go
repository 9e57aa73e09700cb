// Package cursor implements a buffered forward-only reader over an
// abstract byte source. The EDID base block is decoded in a single
// sequential pass, so the cursor offers no seeking or peeking.
package cursor

import (
	"errors"
	"fmt"
	"io"
)

// chunkSize matches the size of one EDID block; a well-formed source
// is drained in a single refill.
const chunkSize = 128

// ErrUnexpectedEndOfData reports that the source ran out of bytes
// before the block was fully decoded.
var ErrUnexpectedEndOfData = errors.New("unexpected end of data")

// ErrSourceFailure reports that the underlying byte source returned an
// error other than end-of-stream.
var ErrSourceFailure = errors.New("byte source failure")

// Cursor reads fixed-width little-endian integers from an io.Reader.
type Cursor struct {
	src io.Reader
	buf [chunkSize]byte
	pos int
	n   int
	// err is a source failure deferred until the bytes delivered
	// alongside it have been consumed.
	err error
}

// New returns a cursor over src.
func New(src io.Reader) *Cursor {
	return &Cursor{src: src}
}

// Next returns the next byte from the source, refilling the internal
// buffer when it is exhausted. A zero-length read is terminal: the
// decoder always knows how many bytes it still needs. A read may
// return bytes together with an error; those bytes are served first.
func (c *Cursor) Next() (byte, error) {
	if c.pos == c.n {
		if c.err != nil {
			return 0, c.err
		}
		n, err := c.src.Read(c.buf[:])
		if err != nil && !errors.Is(err, io.EOF) {
			c.err = fmt.Errorf("%w: %v", ErrSourceFailure, err)
		}
		if n == 0 {
			if c.err != nil {
				return 0, c.err
			}
			return 0, ErrUnexpectedEndOfData
		}
		c.pos = 0
		c.n = n
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// U16 reads a little-endian 16-bit value.
func (c *Cursor) U16() (uint16, error) {
	low, err := c.Next()
	if err != nil {
		return 0, err
	}
	high, err := c.Next()
	if err != nil {
		return 0, err
	}
	return uint16(low) | uint16(high)<<8, nil
}

// U32 reads a little-endian 32-bit value.
func (c *Cursor) U32() (uint32, error) {
	low, err := c.U16()
	if err != nil {
		return 0, err
	}
	high, err := c.U16()
	if err != nil {
		return 0, err
	}
	return uint32(low) | uint32(high)<<16, nil
}
