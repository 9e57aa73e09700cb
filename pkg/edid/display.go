package edid

import "github.com/tuomas56/edidblock/internal/cursor"

// DisplayParameters describes the display hardware.
type DisplayParameters struct {
	Input VideoInput
	// MaxSize is the maximum image size, nil when the block marks it
	// unknown.
	MaxSize *ImageSize
	// Gamma is the display transfer characteristic, nil when unset.
	Gamma *float64
	DPMS  DPMSFeatures
}

func parseDisplayParameters(c *cursor.Cursor) (DisplayParameters, error) {
	input, err := parseVideoInput(c)
	if err != nil {
		return DisplayParameters{}, err
	}
	width, err := c.Next()
	if err != nil {
		return DisplayParameters{}, err
	}
	height, err := c.Next()
	if err != nil {
		return DisplayParameters{}, err
	}
	var maxSize *ImageSize
	if width != 0 && height != 0 {
		maxSize = &ImageSize{Width: float64(width), Height: float64(height)}
	}
	gammaRaw, err := c.Next()
	if err != nil {
		return DisplayParameters{}, err
	}
	var gamma *float64
	if gammaRaw != 0xFF {
		g := (float64(gammaRaw) + 100) / 100
		gamma = &g
	}
	dpms, err := parseDPMSFeatures(c)
	if err != nil {
		return DisplayParameters{}, err
	}
	return DisplayParameters{Input: input, MaxSize: maxSize, Gamma: gamma, DPMS: dpms}, nil
}

// VideoInput is either AnalogInput or DigitalInput; exactly one
// variant is produced per block.
type VideoInput interface {
	isVideoInput()
}

// AnalogInput describes an analog video signal.
type AnalogInput struct {
	SignalLevel   SignalLevel
	SetupExpected bool
	Sync          SupportedSync
}

// DigitalInput describes a digital video signal.
type DigitalInput struct {
	// DFPCompatible marks compatibility with VESA DFP 1.x.
	DFPCompatible bool
}

func (AnalogInput) isVideoInput()  {}
func (DigitalInput) isVideoInput() {}

func parseVideoInput(c *cursor.Cursor) (VideoInput, error) {
	val, err := c.Next()
	if err != nil {
		return nil, err
	}
	if val&0x80 != 0 {
		return DigitalInput{DFPCompatible: val&0x01 != 0}, nil
	}
	var level SignalLevel
	switch val >> 5 & 0x03 {
	case 0:
		level = SignalLevel{High: 0.700, Low: 0.300}
	case 1:
		level = SignalLevel{High: 0.714, Low: 0.286}
	case 2:
		level = SignalLevel{High: 1.000, Low: 0.400}
	case 3:
		level = SignalLevel{High: 0.700, Low: 0.000}
	}
	return AnalogInput{
		SignalLevel:   level,
		SetupExpected: val&0x10 != 0,
		Sync: SupportedSync{
			SerratedVSync: val&0x08 != 0,
			SyncOnGreen:   val&0x04 != 0,
			Composite:     val&0x02 != 0,
			Separate:      val&0x01 != 0,
		},
	}, nil
}

// SignalLevel gives the video line voltages.
type SignalLevel struct {
	High float64
	Low  float64
}

// SupportedSync lists the sync signals an analog display accepts.
type SupportedSync struct {
	// SerratedVSync means HSync pulses continue during VSync.
	SerratedVSync bool
	SyncOnGreen   bool
	Composite     bool
	Separate      bool
}

// ImageSize is measured in centimetres.
type ImageSize struct {
	Width  float64
	Height float64
}

// DPMSFeatures is the power-management and feature-support flag set.
type DPMSFeatures struct {
	StandbySupported  bool
	SuspendSupported  bool
	LowPowerSupported bool
	DisplayType       DisplayType
	DefaultSRGB       bool
	// PreferredTimingMode marks the first detailed timing as the
	// preferred mode.
	PreferredTimingMode bool
	DefaultGTFSupported bool
}

func parseDPMSFeatures(c *cursor.Cursor) (DPMSFeatures, error) {
	val, err := c.Next()
	if err != nil {
		return DPMSFeatures{}, err
	}
	return DPMSFeatures{
		StandbySupported:    val&0x80 != 0,
		SuspendSupported:    val&0x40 != 0,
		LowPowerSupported:   val&0x20 != 0,
		DisplayType:         DisplayType(val >> 3 & 0x03),
		DefaultSRGB:         val&0x04 != 0,
		PreferredTimingMode: val&0x02 != 0,
		DefaultGTFSupported: val&0x01 != 0,
	}, nil
}

// DisplayType is the 2-bit display classification from the DPMS byte.
type DisplayType byte

const (
	Monochrome DisplayType = iota
	RGBColor
	OtherColor
	UndefinedDisplayType
)

func (d DisplayType) String() string {
	switch d {
	case Monochrome:
		return "monochrome"
	case RGBColor:
		return "rgb color"
	case OtherColor:
		return "other color"
	default:
		return "undefined"
	}
}
