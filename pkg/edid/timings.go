package edid

import "github.com/tuomas56/edidblock/internal/cursor"

// Timings collects the three kinds of supported mode descriptions.
type Timings struct {
	// Established is the subset of the fixed VESA catalogue flagged by
	// the block, in catalogue order.
	Established []EstablishedTiming
	// Standard holds the base-block entries followed by any entries
	// contributed by 0xFA descriptors.
	Standard []StandardTiming
	// Detailed holds fully specified timings; index 0 is the preferred
	// timing.
	Detailed []DetailedTiming
}

// EstablishedTiming names one mode from the VESA established timing
// catalogue.
type EstablishedTiming byte

const (
	Mode720x400At70 EstablishedTiming = iota
	Mode720x400At88
	Mode640x480At60
	Mode640x480At67
	Mode640x480At72
	Mode640x480At75
	Mode800x600At56
	Mode800x600At60
	Mode800x600At72
	Mode800x600At75
	Mode832x624At75
	Mode1024x768At87
	Mode1024x768At60
	Mode1024x768At70
	Mode1024x768At75
	Mode1280x1024At75
	Mode1152x870At75
)

var establishedNames = [...]string{
	"720x400@70", "720x400@88", "640x480@60", "640x480@67",
	"640x480@72", "640x480@75", "800x600@56", "800x600@60",
	"800x600@72", "800x600@75", "832x624@75", "1024x768@87",
	"1024x768@60", "1024x768@70", "1024x768@75", "1280x1024@75",
	"1152x870@75",
}

func (e EstablishedTiming) String() string {
	if int(e) < len(establishedNames) {
		return establishedNames[e]
	}
	return "unknown"
}

// establishedBits maps each catalogue entry to its bit position within
// the 17-bit established timing field (16-bit LE word plus bit 7 of
// the following byte, here bit 23).
var establishedBits = [...]uint{
	Mode720x400At70:   7,
	Mode720x400At88:   6,
	Mode640x480At60:   5,
	Mode640x480At67:   4,
	Mode640x480At72:   3,
	Mode640x480At75:   2,
	Mode800x600At56:   1,
	Mode800x600At60:   0,
	Mode800x600At72:   15,
	Mode800x600At75:   14,
	Mode832x624At75:   13,
	Mode1024x768At87:  12,
	Mode1024x768At60:  11,
	Mode1024x768At70:  10,
	Mode1024x768At75:  9,
	Mode1280x1024At75: 8,
	Mode1152x870At75:  23,
}

// StandardTiming describes a mode compactly; the remaining parameters
// follow from the GTF.
type StandardTiming struct {
	// HorizontalResolution in pixels.
	HorizontalResolution uint16
	AspectRatio          AspectRatio
	// RefreshRate in Hz.
	RefreshRate byte
}

// AspectRatio is the 2-bit ratio selector of a standard timing entry.
type AspectRatio byte

const (
	Aspect16x10 AspectRatio = iota
	Aspect4x3
	Aspect5x4
	Aspect16x9
)

// Ratio returns the width/height quotient.
func (a AspectRatio) Ratio() float64 {
	switch a {
	case Aspect16x10:
		return 16.0 / 10.0
	case Aspect4x3:
		return 4.0 / 3.0
	case Aspect5x4:
		return 5.0 / 4.0
	default:
		return 16.0 / 9.0
	}
}

func (a AspectRatio) String() string {
	switch a {
	case Aspect16x10:
		return "16:10"
	case Aspect4x3:
		return "4:3"
	case Aspect5x4:
		return "5:4"
	default:
		return "16:9"
	}
}

func parseEstablishedTimings(c *cursor.Cursor) ([]EstablishedTiming, error) {
	word, err := c.U16()
	if err != nil {
		return nil, err
	}
	tail, err := c.Next()
	if err != nil {
		return nil, err
	}
	field := uint32(word) | uint32(tail)<<16
	var modes []EstablishedTiming
	for mode, bit := range establishedBits {
		if field&(1<<bit) != 0 {
			modes = append(modes, EstablishedTiming(mode))
		}
	}
	return modes, nil
}

func parseBaseStandardTimings(c *cursor.Cursor) ([]StandardTiming, error) {
	var timings []StandardTiming
	for i := 0; i < 8; i++ {
		entry, ok, err := parseStandardTiming(c)
		if err != nil {
			return nil, err
		}
		if ok {
			timings = append(timings, entry)
		}
	}
	return timings, nil
}

// parseStandardTiming decodes one 2-byte entry. The byte pair
// (0x01, 0x01) is an unused-slot sentinel and yields no entry.
func parseStandardTiming(c *cursor.Cursor) (StandardTiming, bool, error) {
	low, err := c.Next()
	if err != nil {
		return StandardTiming{}, false, err
	}
	high, err := c.Next()
	if err != nil {
		return StandardTiming{}, false, err
	}
	if low == 0x01 && high == 0x01 {
		return StandardTiming{}, false, nil
	}
	return StandardTiming{
		HorizontalResolution: (uint16(low) + 31) * 8,
		AspectRatio:          AspectRatio(high >> 6),
		RefreshRate:          high&0x3F + 60,
	}, true, nil
}
