package edid

import "github.com/tuomas56/edidblock/internal/cursor"

// ProductInfo identifies the display vendor and unit.
type ProductInfo struct {
	Manufacturer    ManufacturerID
	ProductCode     uint16
	SerialNumber    uint32
	ManufactureDate ManufactureDate
}

func parseProductInfo(c *cursor.Cursor) (ProductInfo, error) {
	manufacturer, err := parseManufacturerID(c)
	if err != nil {
		return ProductInfo{}, err
	}
	code, err := c.U16()
	if err != nil {
		return ProductInfo{}, err
	}
	serial, err := c.U32()
	if err != nil {
		return ProductInfo{}, err
	}
	date, err := parseManufactureDate(c)
	if err != nil {
		return ProductInfo{}, err
	}
	return ProductInfo{
		Manufacturer:    manufacturer,
		ProductCode:     code,
		SerialNumber:    serial,
		ManufactureDate: date,
	}, nil
}

// ManufacturerID holds the three 5-bit code units packed into the
// 16-bit manufacturer field. Each unit is in [0,31].
type ManufacturerID [3]byte

func parseManufacturerID(c *cursor.Cursor) (ManufacturerID, error) {
	k, err := c.U16()
	if err != nil {
		return ManufacturerID{}, err
	}
	return ManufacturerID{
		byte(k >> 10 & 0x1F),
		byte(k >> 5 & 0x1F),
		byte(k & 0x1F),
	}, nil
}

// String renders the three code units as characters. The mapping is
// kept in codeUnitChar so the character convention can change in one
// place without touching the bit unpacking.
func (id ManufacturerID) String() string {
	return string([]rune{codeUnitChar(id[0]), codeUnitChar(id[1]), codeUnitChar(id[2])})
}

// codeUnitChar converts one 5-bit code unit to a character. The raw
// value is used as-is; no alphabetic offset is applied.
func codeUnitChar(u byte) rune {
	return rune(u)
}

// ManufactureDate is the week and Gregorian year of manufacture.
type ManufactureDate struct {
	Week byte
	Year uint16
}

func parseManufactureDate(c *cursor.Cursor) (ManufactureDate, error) {
	week, err := c.Next()
	if err != nil {
		return ManufactureDate{}, err
	}
	year, err := c.Next()
	if err != nil {
		return ManufactureDate{}, err
	}
	return ManufactureDate{Week: week, Year: uint16(year) + 1990}, nil
}

// SpecVersion is the EDID specification version of the block.
type SpecVersion struct {
	Version  byte
	Revision byte
}

func parseSpecVersion(c *cursor.Cursor) (SpecVersion, error) {
	version, err := c.Next()
	if err != nil {
		return SpecVersion{}, err
	}
	revision, err := c.Next()
	if err != nil {
		return SpecVersion{}, err
	}
	return SpecVersion{Version: version, Revision: revision}, nil
}
