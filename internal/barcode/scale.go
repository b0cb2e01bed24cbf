// Package barcode implements decoding of scale-printed EAN-13 barcodes.
//
// Scale barcodes embed both an item code and a measured weight in their
// digits. A configured prefix marks which codes come from a weighing
// scale; the remaining digits split into a 7-digit item code and a
// 5-digit weight block with two implied decimal places.
package barcode

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var (
	// ErrNotScaleCode is returned when the input is not a scale barcode
	// and should be treated as a plain item code or search term.
	ErrNotScaleCode = errors.New("not a scale barcode")
	// ErrScaleLength is returned by the strict path when a scale-prefixed
	// code does not carry the full 13 digits.
	ErrScaleLength = errors.New("scale barcode must be 13 digits")
	// ErrCheckDigit is returned by the strict path when the EAN-13 check
	// digit does not match the declared final digit.
	ErrCheckDigit = errors.New("scale barcode check digit mismatch")
)

const (
	itemCodeLen    = 7
	weightBlockLen = 5
)

// ScaleCode is a decoded scale barcode: the fixed item code plus the
// weighed quantity (weight block divided by 100).
type ScaleCode struct {
	ItemCode string
	Quantity float64
}

// Decoder decodes scale barcodes for a configured scale prefix.
// An empty prefix disables scale decoding entirely.
type Decoder struct {
	prefix string
}

// NewDecoder creates a Decoder for the given scale prefix.
// A prefix containing non-digits or longer than the item code block is
// rejected, since it could never match a valid scale barcode.
func NewDecoder(prefix string) (*Decoder, error) {
	if prefix != "" {
		if !allDigits(prefix) {
			return nil, fmt.Errorf("scale prefix %q: must contain only digits", prefix)
		}
		if len(prefix) > itemCodeLen {
			return nil, fmt.Errorf("scale prefix %q: longer than %d digits", prefix, itemCodeLen)
		}
	}
	return &Decoder{prefix: prefix}, nil
}

// Prefix returns the configured scale prefix.
func (d *Decoder) Prefix() string {
	return d.prefix
}

// Decode is the lenient decoding path used while input is still being
// typed. It accepts 12 or 13 digit codes; a 13th digit that fails the
// EAN-13 check is logged but the decoded result is still returned.
func (d *Decoder) Decode(raw string) (ScaleCode, bool) {
	body, declared, ok := d.split(raw)
	if !ok {
		return ScaleCode{}, false
	}

	code, ok := decodeBody(body)
	if !ok {
		return ScaleCode{}, false
	}

	if declared >= 0 {
		if expected := CheckDigit(body); expected != declared {
			log.Warn().
				Str("barcode", raw).
				Int("expected", expected).
				Int("declared", declared).
				Msg("Scale barcode check digit mismatch")
		}
	}

	return code, true
}

// DecodeStrict is the Enter-key decoding path. It requires a full
// 13-digit code with a valid check digit; a scale-prefixed code that is
// short or fails the check is a hard rejection, while anything else
// falls through as ErrNotScaleCode for plain lookup.
func (d *Decoder) DecodeStrict(raw string) (ScaleCode, error) {
	body, declared, ok := d.split(raw)
	if !ok {
		return ScaleCode{}, ErrNotScaleCode
	}

	code, ok := decodeBody(body)
	if !ok {
		return ScaleCode{}, ErrNotScaleCode
	}

	if declared < 0 {
		return ScaleCode{}, ErrScaleLength
	}
	if expected := CheckDigit(body); expected != declared {
		return ScaleCode{}, ErrCheckDigit
	}

	return code, nil
}

// split validates prefix and digit shape and returns the 12-digit body
// plus the declared check digit (-1 when only 12 digits were supplied).
func (d *Decoder) split(raw string) (body string, declared int, ok bool) {
	if d.prefix == "" {
		return "", 0, false
	}
	if len(raw) != 12 && len(raw) != 13 {
		return "", 0, false
	}
	if !allDigits(raw) {
		return "", 0, false
	}
	if raw[:len(d.prefix)] != d.prefix {
		return "", 0, false
	}

	declared = -1
	if len(raw) == 13 {
		declared = int(raw[12] - '0')
	}
	return raw[:12], declared, true
}

// decodeBody extracts the item code and weighed quantity from the
// 12-digit body. A zero weight block means the scale printed nothing
// useful, so the code is not treated as a scale barcode.
func decodeBody(body string) (ScaleCode, bool) {
	itemCode := body[:itemCodeLen]
	weightBlock := body[itemCodeLen : itemCodeLen+weightBlockLen]

	var weight int
	for i := 0; i < len(weightBlock); i++ {
		weight = weight*10 + int(weightBlock[i]-'0')
	}
	if weight <= 0 {
		return ScaleCode{}, false
	}

	return ScaleCode{
		ItemCode: itemCode,
		Quantity: float64(weight) / 100,
	}, true
}

// CheckDigit computes the EAN-13 check digit for a 12-digit body:
// digits at even positions weigh 1, odd positions weigh 3, and the
// check digit is what brings the sum up to a multiple of 10.
func CheckDigit(body12 string) int {
	sum := 0
	for i := 0; i < len(body12); i++ {
		digit := int(body12[i] - '0')
		if i%2 == 0 {
			sum += digit
		} else {
			sum += digit * 3
		}
	}
	mod := sum % 10
	if mod == 0 {
		return 0
	}
	return 10 - mod
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
