package edid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Byte offsets of the display parameter fields within the block.
const (
	inputOffset  = 20
	widthOffset  = 21
	heightOffset = 22
	gammaOffset  = 23
)

// The gamma byte 0xFF means no gamma is specified.
func TestGammaSentinel(t *testing.T) {
	block := fixtureBlock(t)
	block[gammaOffset] = 0xFF
	record, err := decodeBlock(block)
	require.NoError(t, err)
	require.Nil(t, record.Display.Gamma)
}

// A zero width or height byte marks the maximum image size unknown.
func TestMaxSizeUnknown(t *testing.T) {
	for _, offset := range []int{widthOffset, heightOffset} {
		block := fixtureBlock(t)
		block[offset] = 0x00
		record, err := decodeBlock(block)
		require.NoError(t, err)
		require.Nil(t, record.Display.MaxSize, "zeroed byte %d", offset)
	}
}

func TestAnalogSignalLevels(t *testing.T) {
	cases := []struct {
		name  string
		input byte
		want  SignalLevel
	}{
		{"0.700/0.300", 0x00, SignalLevel{High: 0.700, Low: 0.300}},
		{"0.714/0.286", 0x20, SignalLevel{High: 0.714, Low: 0.286}},
		{"1.000/0.400", 0x40, SignalLevel{High: 1.000, Low: 0.400}},
		{"0.700/0.000", 0x60, SignalLevel{High: 0.700, Low: 0.000}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			block := fixtureBlock(t)
			block[inputOffset] = tc.input
			record, err := decodeBlock(block)
			require.NoError(t, err)
			analog, ok := record.Display.Input.(AnalogInput)
			require.True(t, ok)
			require.Equal(t, tc.want, analog.SignalLevel)
			require.False(t, analog.SetupExpected)
			require.Equal(t, SupportedSync{}, analog.Sync)
		})
	}
}

func TestAnalogSetupAndSyncFlags(t *testing.T) {
	block := fixtureBlock(t)
	block[inputOffset] = 0x1F // setup expected, all four sync flags

	record, err := decodeBlock(block)
	require.NoError(t, err)
	analog, ok := record.Display.Input.(AnalogInput)
	require.True(t, ok)
	require.Equal(t, SignalLevel{High: 0.700, Low: 0.300}, analog.SignalLevel)
	require.True(t, analog.SetupExpected)
	require.Equal(t, SupportedSync{
		SerratedVSync: true,
		SyncOnGreen:   true,
		Composite:     true,
		Separate:      true,
	}, analog.Sync)
}
