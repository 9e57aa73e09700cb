package edid

import (
	"fmt"

	"github.com/tuomas56/edidblock/internal/cursor"
)

// DetailedTiming fully specifies one video mode.
type DetailedTiming struct {
	// PixelClock in Hz.
	PixelClock uint32
	// Active area in pixels and lines.
	Active Dimensions
	// FrontPorch lengths in pixels and lines.
	FrontPorch Dimensions
	// SyncWidth is the sync pulse length in pixels and lines.
	SyncWidth Dimensions
	// BackPorch lengths are derived from blanking minus sync pulse and
	// front porch; they are not stored on the wire.
	BackPorch Dimensions
	// ImageSize in centimetres.
	ImageSize ImageSize
	// Border in pixels and lines.
	Border     Dimensions
	Interlaced bool
	Stereo     StereoMode
	Sync       SyncType
}

// Dimensions pairs a horizontal pixel count with a vertical line count.
type Dimensions struct {
	Horizontal uint16
	Vertical   uint16
}

// StereoMode is the 3-bit stereo selector of a detailed timing.
type StereoMode byte

const (
	StereoNone StereoMode = iota
	StereoSequentialRightSync
	StereoSequentialLeftSync
	StereoInterleavedLinesRightEven
	StereoInterleavedLinesLeftEven
	StereoInterleaved4Way
	StereoSideBySide
)

func (s StereoMode) String() string {
	switch s {
	case StereoNone:
		return "none"
	case StereoSequentialRightSync:
		return "sequential, right during sync"
	case StereoSequentialLeftSync:
		return "sequential, left during sync"
	case StereoInterleavedLinesRightEven:
		return "interleaved lines, right on even"
	case StereoInterleavedLinesLeftEven:
		return "interleaved lines, left on even"
	case StereoInterleaved4Way:
		return "4-way interleaved"
	default:
		return "side by side"
	}
}

// SyncType is either CompositeSync or SeparateSync.
type SyncType interface {
	isSyncType()
}

// CompositeSync carries sync on a single signal.
type CompositeSync struct {
	// Serrated means HSync pulses continue during VSync.
	Serrated bool
	Line     SyncLine
}

// SeparateSync carries independent horizontal and vertical sync
// signals with individual polarities.
type SeparateSync struct {
	Horizontal SyncPolarity
	Vertical   SyncPolarity
}

func (CompositeSync) isSyncType() {}
func (SeparateSync) isSyncType()  {}

// SyncLine selects the line a composite sync is carried on.
type SyncLine interface {
	isSyncLine()
}

// SyncOnRGB syncs on all three video lines.
type SyncOnRGB struct{}

// SyncOnGreen syncs on the green line only.
type SyncOnGreen struct{}

// DigitalSyncLine is a digital composite sync with a polarity.
type DigitalSyncLine struct {
	Polarity SyncPolarity
}

func (SyncOnRGB) isSyncLine()       {}
func (SyncOnGreen) isSyncLine()     {}
func (DigitalSyncLine) isSyncLine() {}

// SyncPolarity is the direction of a sync pulse.
type SyncPolarity byte

const (
	SyncNegative SyncPolarity = iota
	SyncPositive
)

func (p SyncPolarity) String() string {
	if p == SyncPositive {
		return "positive"
	}
	return "negative"
}

func polarity(set bool) SyncPolarity {
	if set {
		return SyncPositive
	}
	return SyncNegative
}

// parseSlotGeometry decodes the 16 bytes of a detailed timing slot
// that follow the pixel clock word, given the already-consumed third
// byte (the low bits of the horizontal active width).
func parseSlotGeometry(c *cursor.Cursor, pixelClock uint32, haLow byte) (DetailedTiming, error) {
	hbLow, err := c.Next()
	if err != nil {
		return DetailedTiming{}, err
	}
	hHigh, err := c.Next()
	if err != nil {
		return DetailedTiming{}, err
	}
	// Active and blanking widths share one high byte per axis: the
	// upper nibble extends the active width, the lower nibble the
	// blanking width.
	hActive := uint16(haLow) | uint16(hHigh>>4)<<8
	hBlanking := uint16(hbLow) | uint16(hHigh&0x0F)<<8

	vaLow, err := c.Next()
	if err != nil {
		return DetailedTiming{}, err
	}
	vbLow, err := c.Next()
	if err != nil {
		return DetailedTiming{}, err
	}
	vHigh, err := c.Next()
	if err != nil {
		return DetailedTiming{}, err
	}
	vActive := uint16(vaLow) | uint16(vHigh>>4)<<8
	vBlanking := uint16(vbLow) | uint16(vHigh&0x0F)<<8

	hsoLow, err := c.Next()
	if err != nil {
		return DetailedTiming{}, err
	}
	hswLow, err := c.Next()
	if err != nil {
		return DetailedTiming{}, err
	}
	vsLow, err := c.Next()
	if err != nil {
		return DetailedTiming{}, err
	}
	hvsHigh, err := c.Next()
	if err != nil {
		return DetailedTiming{}, err
	}
	// Sync offsets and widths pack their high bits into one shared
	// byte: 2-bit fields for the horizontal values, 2-bit fields for
	// the vertical ones, whose low 4 bits share a further byte.
	hFrontPorch := uint16(hsoLow) | uint16(hvsHigh>>6)<<8
	hSyncWidth := uint16(hswLow) | uint16(hvsHigh>>4&0x03)<<8
	vFrontPorch := uint16(vsLow>>4) | uint16(hvsHigh>>2&0x03)<<4
	vSyncWidth := uint16(vsLow&0x0F) | uint16(hvsHigh&0x03)<<4

	if hBlanking < hSyncWidth+hFrontPorch {
		return DetailedTiming{}, fmt.Errorf(
			"%w: horizontal blanking %d shorter than sync %d + front porch %d",
			ErrMalformedTimingGeometry, hBlanking, hSyncWidth, hFrontPorch)
	}
	if vBlanking < vSyncWidth+vFrontPorch {
		return DetailedTiming{}, fmt.Errorf(
			"%w: vertical blanking %d shorter than sync %d + front porch %d",
			ErrMalformedTimingGeometry, vBlanking, vSyncWidth, vFrontPorch)
	}

	hsizeLow, err := c.Next()
	if err != nil {
		return DetailedTiming{}, err
	}
	vsizeLow, err := c.Next()
	if err != nil {
		return DetailedTiming{}, err
	}
	sizeHigh, err := c.Next()
	if err != nil {
		return DetailedTiming{}, err
	}
	hSize := uint16(hsizeLow) | uint16(sizeHigh>>4)<<8
	vSize := uint16(vsizeLow) | uint16(sizeHigh&0x0F)<<8

	hBorder, err := c.Next()
	if err != nil {
		return DetailedTiming{}, err
	}
	vBorder, err := c.Next()
	if err != nil {
		return DetailedTiming{}, err
	}

	flags, err := c.Next()
	if err != nil {
		return DetailedTiming{}, err
	}

	return DetailedTiming{
		PixelClock: pixelClock,
		Active:     Dimensions{Horizontal: hActive, Vertical: vActive},
		FrontPorch: Dimensions{Horizontal: hFrontPorch, Vertical: vFrontPorch},
		SyncWidth:  Dimensions{Horizontal: hSyncWidth, Vertical: vSyncWidth},
		BackPorch: Dimensions{
			Horizontal: hBlanking - hSyncWidth - hFrontPorch,
			Vertical:   vBlanking - vSyncWidth - vFrontPorch,
		},
		ImageSize:  ImageSize{Width: float64(hSize) / 10, Height: float64(vSize) / 10},
		Border:     Dimensions{Horizontal: uint16(hBorder), Vertical: uint16(vBorder)},
		Interlaced: flags&0x80 != 0,
		Stereo:     stereoMode(flags),
		Sync:       syncType(flags),
	}, nil
}

// stereoMode combines bits 6, 5 and 0 of the flag byte. Both selector
// bits clear means no stereo regardless of bit 0.
func stereoMode(flags byte) StereoMode {
	bit6 := flags&0x40 != 0
	bit5 := flags&0x20 != 0
	bit0 := flags&0x01 != 0
	switch {
	case !bit6 && !bit5:
		return StereoNone
	case !bit6 && bit5 && !bit0:
		return StereoSequentialRightSync
	case bit6 && !bit5 && !bit0:
		return StereoSequentialLeftSync
	case !bit6 && bit5 && bit0:
		return StereoInterleavedLinesRightEven
	case bit6 && !bit5 && bit0:
		return StereoInterleavedLinesLeftEven
	case bit6 && bit5 && !bit0:
		return StereoInterleaved4Way
	default:
		return StereoSideBySide
	}
}

func syncType(flags byte) SyncType {
	switch flags >> 3 & 0x03 {
	case 0, 1:
		line := SyncLine(SyncOnGreen{})
		if flags&0x02 != 0 {
			line = SyncOnRGB{}
		}
		return CompositeSync{Serrated: flags&0x04 != 0, Line: line}
	case 2:
		return CompositeSync{
			Serrated: flags&0x04 != 0,
			Line:     DigitalSyncLine{Polarity: polarity(flags&0x02 != 0)},
		}
	default:
		return SeparateSync{
			Vertical:   polarity(flags&0x04 != 0),
			Horizontal: polarity(flags&0x02 != 0),
		}
	}
}
