package edid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Established timings are reported in catalogue order even when their
// bit positions within the field say otherwise.
func TestEstablishedTimingsCatalogueOrder(t *testing.T) {
	block := fixtureBlock(t)
	// Bit 7 of the first byte is 720x400@70, bit 0 is 800x600@60 and
	// bit 7 of the third byte is 1152x870@75.
	block[establishedOffset] = 0x81
	block[establishedOffset+2] = 0x80

	record, err := decodeBlock(block)
	require.NoError(t, err)
	require.Equal(t,
		[]EstablishedTiming{Mode720x400At70, Mode800x600At60, Mode1152x870At75},
		record.Timings.Established)
}

func TestStandardTimingEntry(t *testing.T) {
	block := fixtureBlock(t)
	// 1920 pixels wide, 16:9, 60 Hz.
	block[standardOffset] = 0xD1
	block[standardOffset+1] = 0xC0

	record, err := decodeBlock(block)
	require.NoError(t, err)
	require.Equal(t, []StandardTiming{{
		HorizontalResolution: 1920,
		AspectRatio:          Aspect16x9,
		RefreshRate:          60,
	}}, record.Timings.Standard)
	require.InDelta(t, 16.0/9.0, record.Timings.Standard[0].AspectRatio.Ratio(), 1e-9)
}

// The (0x01, 0x01) byte pair marks an unused slot and contributes no
// entry; the golden fixture carries eight of them and decodes to an
// empty list, so only mixed content needs covering here.
func TestStandardTimingSkipsPaddingEntries(t *testing.T) {
	block := fixtureBlock(t)
	block[standardOffset+4] = 0x81 // third slot: 1280 wide
	block[standardOffset+5] = 0x4F // 4:3, 75 Hz

	record, err := decodeBlock(block)
	require.NoError(t, err)
	require.Len(t, record.Timings.Standard, 1)
	require.Equal(t, uint16(1280), record.Timings.Standard[0].HorizontalResolution)
	require.Equal(t, Aspect4x3, record.Timings.Standard[0].AspectRatio)
	require.Equal(t, byte(75), record.Timings.Standard[0].RefreshRate)
}
