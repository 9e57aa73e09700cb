package edid

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"github.com/tuomas56/edidblock/internal/cursor"
)

// Descriptor is one tagged 18-byte monitor descriptor. The concrete
// types are SerialNumber, OtherString, MonitorName, RangeLimits,
// ManufacturerData and Undefined.
type Descriptor interface {
	isDescriptor()
}

// SerialNumber is the display serial number as text (tag 0xFF).
type SerialNumber string

// OtherString is free-form text (tag 0xFE).
type OtherString string

// MonitorName is the display model name (tag 0xFC).
type MonitorName string

// RangeLimits gives the supported rate ranges (tag 0xFD).
type RangeLimits struct {
	// Vertical rate bounds in Hz.
	MinVerticalRate byte
	MaxVerticalRate byte
	// Horizontal rate bounds in Hz.
	MinHorizontalRate uint32
	MaxHorizontalRate uint32
	// MaxPixelClock in Hz.
	MaxPixelClock uint32
	Secondary     SecondaryTiming
}

// ManufacturerData is a vendor-defined payload (tags 0x00-0x0F),
// carried verbatim.
type ManufacturerData struct {
	Tag  byte
	Data [13]byte
}

// Undefined is a descriptor with an unassigned tag (0x11-0xF9),
// carried verbatim.
type Undefined struct {
	Tag  byte
	Data [13]byte
}

func (SerialNumber) isDescriptor()     {}
func (OtherString) isDescriptor()      {}
func (MonitorName) isDescriptor()      {}
func (RangeLimits) isDescriptor()      {}
func (ManufacturerData) isDescriptor() {}
func (Undefined) isDescriptor()        {}

// SecondaryTiming is the secondary timing formula of a range limits
// descriptor: SecondaryNone, SecondaryGTF or SecondaryOpaque.
type SecondaryTiming interface {
	isSecondaryTiming()
}

// SecondaryNone means no secondary timing formula is given.
type SecondaryNone struct{}

// SecondaryGTF carries alternative Generalized Timing Formula fitting
// parameters.
type SecondaryGTF struct {
	// StartFrequency is the horizontal frequency in Hz from which the
	// parameters apply.
	StartFrequency uint32
	C              float64
	M              float64
	K              float64
	J              float64
}

// SecondaryOpaque preserves an unrecognised selector and its payload.
type SecondaryOpaque struct {
	Tag  byte
	Data [7]byte
}

func (SecondaryNone) isSecondaryTiming()   {}
func (SecondaryGTF) isSecondaryTiming()    {}
func (SecondaryOpaque) isSecondaryTiming() {}

// slotData accumulates everything the four 18-byte slots contribute.
// The aggregates on Record are assembled from it exactly once, so no
// partially merged Timings or ColorCharacteristics is ever observable.
type slotData struct {
	descriptors []Descriptor
	detailed    []DetailedTiming
	standard    []StandardTiming
	whitePoints []WhitePoint
}

// parseSlots decodes the four detailed-timing/descriptor slots. The
// first slot must hold a timing — a zero pixel clock word there is an
// error in its own right, reported before the rest of the slot is
// interpreted. The remaining three dispatch on a zero clock word to
// the tagged descriptor decoder.
func parseSlots(c *cursor.Cursor) (slotData, error) {
	var data slotData

	clockRaw, err := c.U16()
	if err != nil {
		return slotData{}, err
	}
	third, err := c.Next()
	if err != nil {
		return slotData{}, err
	}
	if clockRaw == 0 {
		return slotData{}, ErrMissingPreferredTiming
	}
	timing, err := parseSlotGeometry(c, uint32(clockRaw)*10000, third)
	if err != nil {
		return slotData{}, err
	}
	data.detailed = append(data.detailed, timing)

	for i := 0; i < 3; i++ {
		timing, ok, err := parseTimingSlot(c, &data)
		if err != nil {
			return slotData{}, err
		}
		if ok {
			data.detailed = append(data.detailed, timing)
		}
	}
	return data, nil
}

// parseTimingSlot reads one slot. It reports ok=false when the slot
// held a descriptor (already folded into data) rather than a timing.
func parseTimingSlot(c *cursor.Cursor, data *slotData) (DetailedTiming, bool, error) {
	clockRaw, err := c.U16()
	if err != nil {
		return DetailedTiming{}, false, err
	}
	third, err := c.Next()
	if err != nil {
		return DetailedTiming{}, false, err
	}
	if clockRaw == 0 {
		if err := parseDescriptor(c, data); err != nil {
			return DetailedTiming{}, false, err
		}
		return DetailedTiming{}, false, nil
	}
	timing, err := parseSlotGeometry(c, uint32(clockRaw)*10000, third)
	if err != nil {
		return DetailedTiming{}, false, err
	}
	return timing, true, nil
}

// parseDescriptor reads the tag byte and the remaining 14 bytes of a
// non-timing slot. The byte after the tag is reserved and ignored.
func parseDescriptor(c *cursor.Cursor, data *slotData) error {
	tag, err := c.Next()
	if err != nil {
		return err
	}
	if _, err := c.Next(); err != nil {
		return err
	}

	switch {
	case tag <= 0x0F:
		payload, err := read13(c)
		if err != nil {
			return err
		}
		data.descriptors = append(data.descriptors, ManufacturerData{Tag: tag, Data: payload})
	case tag == 0x10:
		// Padding slot: the bytes are consumed but carry nothing.
		if _, err := read13(c); err != nil {
			return err
		}
	case tag <= 0xF9:
		payload, err := read13(c)
		if err != nil {
			return err
		}
		data.descriptors = append(data.descriptors, Undefined{Tag: tag, Data: payload})
	case tag == 0xFA:
		return parseExtraStandardTimings(c, data)
	case tag == 0xFB:
		return parseWhitePoints(c, data)
	case tag == 0xFD:
		return parseRangeLimits(c, data)
	default: // 0xFC, 0xFE, 0xFF
		text, err := parseDescriptorText(c)
		if err != nil {
			return err
		}
		switch tag {
		case 0xFC:
			data.descriptors = append(data.descriptors, MonitorName(text))
		case 0xFE:
			data.descriptors = append(data.descriptors, OtherString(text))
		case 0xFF:
			data.descriptors = append(data.descriptors, SerialNumber(text))
		}
	}
	return nil
}

// parseExtraStandardTimings decodes a 0xFA descriptor: six further
// standard timing entries and a terminator.
func parseExtraStandardTimings(c *cursor.Cursor, data *slotData) error {
	for i := 0; i < 6; i++ {
		entry, ok, err := parseStandardTiming(c)
		if err != nil {
			return err
		}
		if ok {
			data.standard = append(data.standard, entry)
		}
	}
	return expectTerminator(c)
}

// parseWhitePoints decodes a 0xFB descriptor: up to two 5-byte white
// point entries. An entry is recorded before its index is inspected;
// index zero then consumes the second entry's bytes as filler and
// stops the loop.
func parseWhitePoints(c *cursor.Cursor, data *slotData) error {
	for i := 0; i < 2; i++ {
		index, err := c.Next()
		if err != nil {
			return err
		}
		wLow, err := c.Next()
		if err != nil {
			return err
		}
		xHigh, err := c.Next()
		if err != nil {
			return err
		}
		yHigh, err := c.Next()
		if err != nil {
			return err
		}
		gammaRaw, err := c.Next()
		if err != nil {
			return err
		}
		data.whitePoints = append(data.whitePoints, WhitePoint{
			Index: index,
			Point: Chromaticity{X: chroma(xHigh, wLow>>2), Y: chroma(yHigh, wLow)},
			Gamma: (float64(gammaRaw) + 100) / 100,
		})
		if index == 0 {
			if _, err := c.U32(); err != nil {
				return err
			}
			if _, err := c.Next(); err != nil {
				return err
			}
			break
		}
	}
	if err := expectTerminator(c); err != nil {
		return err
	}
	return expectGuardWord(c)
}

// parseRangeLimits decodes a 0xFD descriptor.
func parseRangeLimits(c *cursor.Cursor, data *slotData) error {
	minVertical, err := c.Next()
	if err != nil {
		return err
	}
	maxVertical, err := c.Next()
	if err != nil {
		return err
	}
	minHorizontal, err := c.Next()
	if err != nil {
		return err
	}
	maxHorizontal, err := c.Next()
	if err != nil {
		return err
	}
	maxClock, err := c.Next()
	if err != nil {
		return err
	}
	selector, err := c.Next()
	if err != nil {
		return err
	}

	var secondary SecondaryTiming
	switch selector {
	case 0x00:
		if err := expectTerminator(c); err != nil {
			return err
		}
		for i := 0; i < 3; i++ {
			if err := expectGuardWord(c); err != nil {
				return err
			}
		}
		secondary = SecondaryNone{}
	case 0x02:
		lead, err := c.Next()
		if err != nil {
			return err
		}
		if lead != 0x00 {
			return fmt.Errorf("%w: GTF secondary timing lead byte 0x%02X, want 0x00", ErrMalformedDescriptor, lead)
		}
		start, err := c.Next()
		if err != nil {
			return err
		}
		cVal, err := c.Next()
		if err != nil {
			return err
		}
		mVal, err := c.U16()
		if err != nil {
			return err
		}
		kVal, err := c.Next()
		if err != nil {
			return err
		}
		jVal, err := c.Next()
		if err != nil {
			return err
		}
		secondary = SecondaryGTF{
			StartFrequency: uint32(start) * 2000,
			C:              float64(cVal) / 2,
			M:              float64(mVal),
			K:              float64(kVal),
			J:              float64(jVal) / 2,
		}
	default:
		var payload [7]byte
		for i := range payload {
			b, err := c.Next()
			if err != nil {
				return err
			}
			payload[i] = b
		}
		secondary = SecondaryOpaque{Tag: selector, Data: payload}
	}

	data.descriptors = append(data.descriptors, RangeLimits{
		MinVerticalRate:   minVertical,
		MaxVerticalRate:   maxVertical,
		MinHorizontalRate: uint32(minHorizontal) * 1000,
		MaxHorizontalRate: uint32(maxHorizontal) * 1000,
		MaxPixelClock:     uint32(maxClock) * 10000000,
		Secondary:         secondary,
	})
	return nil
}

// parseDescriptorText reads up to 13 text bytes terminated by 0x0A;
// every byte after the terminator must be 0x20. The payload is
// ISO 8859-1.
func parseDescriptorText(c *cursor.Cursor) (string, error) {
	var raw []byte
	for i := 0; i < 13; i++ {
		b, err := c.Next()
		if err != nil {
			return "", err
		}
		if b == 0x0A {
			for j := i + 1; j < 13; j++ {
				pad, err := c.Next()
				if err != nil {
					return "", err
				}
				if pad != 0x20 {
					return "", fmt.Errorf("%w: text padding byte 0x%02X, want 0x20", ErrMalformedDescriptor, pad)
				}
			}
			break
		}
		raw = append(raw, b)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDescriptor, err)
	}
	return string(decoded), nil
}

func read13(c *cursor.Cursor) ([13]byte, error) {
	var payload [13]byte
	for i := range payload {
		b, err := c.Next()
		if err != nil {
			return payload, err
		}
		payload[i] = b
	}
	return payload, nil
}

func expectTerminator(c *cursor.Cursor) error {
	b, err := c.Next()
	if err != nil {
		return err
	}
	if b != 0x0A {
		return fmt.Errorf("%w: terminator byte 0x%02X, want 0x0A", ErrMalformedDescriptor, b)
	}
	return nil
}

func expectGuardWord(c *cursor.Cursor) error {
	w, err := c.U16()
	if err != nil {
		return err
	}
	if w != 0x2020 {
		return fmt.Errorf("%w: guard word 0x%04X, want 0x2020", ErrMalformedDescriptor, w)
	}
	return nil
}
