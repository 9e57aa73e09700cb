package edid

import (
	"bytes"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Byte offsets of the block regions mutated by tests.
const (
	establishedOffset = 35
	standardOffset    = 38
	slotOffset        = 54
	slotSize          = 18
)

// fixtureHex returns the golden block fixture as a trimmed hex string.
func fixtureHex(t *testing.T) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("..", "..", "testdata", "color_lcd.hex"))
	require.NoError(t, err)
	return strings.TrimSpace(string(raw))
}

// fixtureBlock returns a fresh copy of the golden block as raw bytes.
func fixtureBlock(t *testing.T) []byte {
	t.Helper()
	data, err := hex.DecodeString(fixtureHex(t))
	require.NoError(t, err)
	require.Len(t, data, 128)
	return data
}

// withSlot returns a copy of block with slot i replaced.
func withSlot(t *testing.T, block []byte, i int, slot []byte) []byte {
	t.Helper()
	require.Len(t, slot, slotSize)
	out := append([]byte(nil), block...)
	copy(out[slotOffset+i*slotSize:], slot)
	return out
}

// descriptorSlot builds an 18-byte descriptor slot for tag with the
// given 13-byte payload.
func descriptorSlot(t *testing.T, tag byte, payload []byte) []byte {
	t.Helper()
	require.Len(t, payload, 13)
	slot := make([]byte, slotSize)
	slot[3] = tag
	copy(slot[5:], payload)
	return slot
}

func decodeBlock(block []byte) (Record, error) {
	return Decode(bytes.NewReader(block))
}

func TestDecodeHexSeparators(t *testing.T) {
	block := fixtureBlock(t)
	raw := " |" + hex.EncodeToString(block[:4]) + "_" + hex.EncodeToString(block[4:]) + "| "
	_, err := DecodeHex(raw)
	require.NoError(t, err)
}

func TestDecodeHexOddLength(t *testing.T) {
	_, err := DecodeHex("ABC")
	require.Error(t, err)
}

func TestHeaderInvalid(t *testing.T) {
	block := fixtureBlock(t)
	for _, i := range []int{0, 1, 6, 7} {
		mutated := append([]byte(nil), block...)
		mutated[i] ^= 0x01
		_, err := decodeBlock(mutated)
		require.ErrorIs(t, err, ErrHeaderInvalid, "mutated header byte %d", i)
	}
}

// A bad header must abort before any later byte is touched: eight
// bytes of garbage alone yield ErrHeaderInvalid, never a short read.
func TestHeaderFailFast(t *testing.T) {
	_, err := decodeBlock(make([]byte, 8))
	require.ErrorIs(t, err, ErrHeaderInvalid)
	require.NotErrorIs(t, err, ErrUnexpectedEndOfData)
}

func TestTruncatedBlock(t *testing.T) {
	block := fixtureBlock(t)
	for _, n := range []int{8, 20, 54, 71, 126} {
		_, err := decodeBlock(block[:n])
		require.ErrorIs(t, err, ErrUnexpectedEndOfData, "prefix of %d bytes", n)
	}
}

// Decoding must never fault, whatever the input: every prefix and
// every single-byte corruption of the golden block either decodes or
// returns a typed error.
func TestNoPanic(t *testing.T) {
	block := fixtureBlock(t)
	for n := 0; n <= len(block); n++ {
		_, _ = decodeBlock(block[:n])
	}
	for i := range block {
		mutated := append([]byte(nil), block...)
		mutated[i] = ^mutated[i]
		_, _ = decodeBlock(mutated)
	}
}

func TestSourceFailureSurfaced(t *testing.T) {
	_, err := Decode(failingReader{})
	require.ErrorIs(t, err, ErrSourceFailure)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("ddc channel timeout")
}
