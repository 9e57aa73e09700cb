package edid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// The fixture is the base block of an Apple "Color LCD" retina panel.
func TestColorLCDGolden(t *testing.T) {
	record, err := DecodeHex(fixtureHex(t))
	require.NoError(t, err)

	require.Equal(t, ManufacturerID{4, 0, 6}, record.Product.Manufacturer)
	require.Equal(t, uint16(40994), record.Product.ProductCode)
	require.Equal(t, uint32(0), record.Product.SerialNumber)
	require.Equal(t, byte(4), record.Product.ManufactureDate.Week)
	require.Equal(t, uint16(2013), record.Product.ManufactureDate.Year)
	require.Equal(t, SpecVersion{Version: 1, Revision: 4}, record.Version)

	require.Equal(t, DigitalInput{DFPCompatible: true}, record.Display.Input)
	require.NotNil(t, record.Display.MaxSize)
	require.InDelta(t, 33, record.Display.MaxSize.Width, 1e-9)
	require.InDelta(t, 21, record.Display.MaxSize.Height, 1e-9)
	require.NotNil(t, record.Display.Gamma)
	require.InDelta(t, 2.2, *record.Display.Gamma, 1e-9)
	require.True(t, record.Display.DPMS.PreferredTimingMode)
	require.False(t, record.Display.DPMS.DefaultSRGB)
	require.Equal(t, Monochrome, record.Display.DPMS.DisplayType)

	require.InDelta(t, 0.6533, record.Color.Red.X, 1e-4)
	require.InDelta(t, 0.3340, record.Color.Red.Y, 1e-4)
	require.InDelta(t, 0.2998, record.Color.Green.X, 1e-4)
	require.InDelta(t, 0.6201, record.Color.Green.Y, 1e-4)
	require.InDelta(t, 0.1465, record.Color.Blue.X, 1e-4)
	require.InDelta(t, 0.0498, record.Color.Blue.Y, 1e-4)
	require.InDelta(t, 0.3125, record.Color.White.X, 1e-4)
	require.InDelta(t, 0.3291, record.Color.White.Y, 1e-4)
	require.Empty(t, record.Color.WhitePoints)

	require.Empty(t, record.Timings.Established)
	require.Empty(t, record.Timings.Standard)
	require.Len(t, record.Timings.Detailed, 1)

	preferred := record.Timings.Detailed[0]
	require.Equal(t, uint32(337750000), preferred.PixelClock)
	require.Equal(t, Dimensions{Horizontal: 2880, Vertical: 1800}, preferred.Active)
	require.Equal(t, Dimensions{Horizontal: 48, Vertical: 3}, preferred.FrontPorch)
	require.Equal(t, Dimensions{Horizontal: 32, Vertical: 6}, preferred.SyncWidth)
	require.Equal(t, Dimensions{Horizontal: 80, Vertical: 43}, preferred.BackPorch)
	require.InDelta(t, 33.1, preferred.ImageSize.Width, 1e-9)
	require.InDelta(t, 20.7, preferred.ImageSize.Height, 1e-9)
	require.Equal(t, Dimensions{}, preferred.Border)
	require.False(t, preferred.Interlaced)
	require.Equal(t, StereoNone, preferred.Stereo)
	require.Equal(t, SeparateSync{Horizontal: SyncPositive, Vertical: SyncNegative}, preferred.Sync)

	require.Len(t, record.Descriptors, 2)
	require.Equal(t, MonitorName("Color LCD"), record.Descriptors[0])
	require.Equal(t, ManufacturerData{
		Tag:  0,
		Data: [13]byte{11: 0x10},
	}, record.Descriptors[1])

	require.Equal(t, byte(0), record.Extensions)
}
