// Package edid decodes the 128-byte EDID base block into a structured
// record. The decoder is a pure single-pass function over an abstract
// byte source: identical input always yields an identical Record or an
// identical error, and no partially decoded record is ever returned.
//
// Gathering the bytes from hardware (DDC/I2C, OS APIs) is the caller's
// concern; any io.Reader serves as the source. Trailing extension
// blocks are reported by count only and never parsed.
package edid

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/tuomas56/edidblock/internal/cursor"
)

// Record is a fully decoded EDID base block.
type Record struct {
	Product     ProductInfo
	Version     SpecVersion
	Display     DisplayParameters
	Color       ColorCharacteristics
	Timings     Timings
	Descriptors []Descriptor
	// Extensions is the raw count of extension blocks following the
	// base block. They are not parsed.
	Extensions byte
}

// Decode reads one EDID base block from src. On any error the whole
// decode is abandoned and no record is returned.
func Decode(src io.Reader) (Record, error) {
	c := cursor.New(src)
	if err := checkHeader(c); err != nil {
		return Record{}, err
	}

	product, err := parseProductInfo(c)
	if err != nil {
		return Record{}, err
	}
	version, err := parseSpecVersion(c)
	if err != nil {
		return Record{}, err
	}
	display, err := parseDisplayParameters(c)
	if err != nil {
		return Record{}, err
	}
	color, err := parseColorCharacteristics(c)
	if err != nil {
		return Record{}, err
	}
	established, err := parseEstablishedTimings(c)
	if err != nil {
		return Record{}, err
	}
	standard, err := parseBaseStandardTimings(c)
	if err != nil {
		return Record{}, err
	}
	slots, err := parseSlots(c)
	if err != nil {
		return Record{}, err
	}
	extensions, err := c.Next()
	if err != nil {
		return Record{}, err
	}

	// Descriptor-sourced white points and timings are merged here,
	// exactly once, after the whole pass has succeeded.
	color.WhitePoints = slots.whitePoints
	return Record{
		Product: product,
		Version: version,
		Display: display,
		Color:   color,
		Timings: Timings{
			Established: established,
			Standard:    append(standard, slots.standard...),
			Detailed:    slots.detailed,
		},
		Descriptors: slots.descriptors,
		Extensions:  extensions,
	}, nil
}

// DecodeHex decodes a hex-encoded EDID block. Whitespace and the
// separators '|' and '_' are ignored, as is a leading 0x prefix.
func DecodeHex(raw string) (Record, error) {
	clean := stripSeparators(raw)
	if strings.HasPrefix(clean, "0X") || strings.HasPrefix(clean, "0x") {
		clean = clean[2:]
	}
	if len(clean)%2 != 0 {
		return Record{}, fmt.Errorf("hex block must contain an even number of digits, got %d", len(clean))
	}
	decoded := make([]byte, len(clean)/2)
	if _, err := hex.Decode(decoded, []byte(clean)); err != nil {
		return Record{}, fmt.Errorf("decode hex: %w", err)
	}
	return Decode(bytes.NewReader(decoded))
}

// checkHeader verifies the fixed 8-byte fingerprint
// 00 FF FF FF FF FF FF 00, read as two little-endian words.
func checkHeader(c *cursor.Cursor) error {
	first, err := c.U32()
	if err != nil {
		return err
	}
	second, err := c.U32()
	if err != nil {
		return err
	}
	if first != 0xFFFFFF00 || second != 0x00FFFFFF {
		return fmt.Errorf("%w: 0x%08X 0x%08X", ErrHeaderInvalid, first, second)
	}
	return nil
}

// String renders a human-readable summary of the record.
func (r Record) String() string {
	summary := map[string]any{
		"manufacturer":  r.Product.Manufacturer.String(),
		"product_code":  fmt.Sprintf("0x%04X", r.Product.ProductCode),
		"serial_number": r.Product.SerialNumber,
		"manufactured":  fmt.Sprintf("week %d of %d", r.Product.ManufactureDate.Week, r.Product.ManufactureDate.Year),
		"edid_version":  fmt.Sprintf("%d.%d", r.Version.Version, r.Version.Revision),
		"extensions":    r.Extensions,
	}
	switch input := r.Display.Input.(type) {
	case DigitalInput:
		summary["input"] = "digital"
		summary["dfp_compatible"] = input.DFPCompatible
	case AnalogInput:
		summary["input"] = "analog"
	}
	if r.Display.MaxSize != nil {
		summary["max_size_cm"] = fmt.Sprintf("%.0fx%.0f", r.Display.MaxSize.Width, r.Display.MaxSize.Height)
	}
	if r.Display.Gamma != nil {
		summary["gamma"] = *r.Display.Gamma
	}
	if len(r.Timings.Detailed) > 0 {
		preferred := r.Timings.Detailed[0]
		summary["preferred_mode"] = fmt.Sprintf("%dx%d @ %d Hz pixel clock",
			preferred.Active.Horizontal, preferred.Active.Vertical, preferred.PixelClock)
	}
	for _, d := range r.Descriptors {
		if name, ok := d.(MonitorName); ok {
			summary["monitor_name"] = string(name)
		}
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("edid record for %s (marshal error: %v)", r.Product.Manufacturer, err)
	}
	return string(data)
}

func stripSeparators(s string) string {
	builder := strings.Builder{}
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
