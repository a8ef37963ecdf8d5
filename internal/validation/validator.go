// Package validation checks user-supplied dividend and divisor strings
// before they reach the division trace generator.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Mr-Dark-debug/gf2div/pkg/gf2"
)

var binaryPattern = regexp.MustCompile(`^[01]+$`)

// Field names the input a FieldError refers to.
type Field string

const (
	FieldDividend Field = "dividend"
	FieldDivisor  Field = "divisor"
)

// FieldError reports the first rule an input violated.
type FieldError struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fieldErr(f Field, format string, args ...interface{}) *FieldError {
	return &FieldError{Field: f, Message: fmt.Sprintf(format, args...)}
}

// Validate checks a dividend/divisor pair and returns a *FieldError for
// the first violation, or nil. Surrounding whitespace is ignored.
func Validate(dividend, divisor string) error {
	dividend = strings.TrimSpace(dividend)
	divisor = strings.TrimSpace(divisor)

	if dividend == "" {
		return fieldErr(FieldDividend, "dividend cannot be empty")
	}
	if !binaryPattern.MatchString(dividend) {
		return fieldErr(FieldDividend, "dividend may only contain '0' and '1'")
	}

	if divisor == "" {
		return fieldErr(FieldDivisor, "divisor cannot be empty")
	}
	if !binaryPattern.MatchString(divisor) {
		return fieldErr(FieldDivisor, "divisor may only contain '0' and '1'")
	}
	if len(divisor) < 2 {
		return fieldErr(FieldDivisor, "divisor must be at least 2 bits long")
	}
	if divisor[0] != '1' {
		return fieldErr(FieldDivisor, "divisor must start with '1'")
	}

	if len(dividend) < len(divisor) {
		return fieldErr(FieldDividend,
			"dividend must be at least as long as the divisor (%d bits)", len(divisor))
	}
	return nil
}

// Parse validates the pair and converts it to bit strings.
func Parse(dividend, divisor string) (gf2.Bits, gf2.Bits, error) {
	if err := Validate(dividend, divisor); err != nil {
		return nil, nil, err
	}
	a, err := gf2.Parse(strings.TrimSpace(dividend))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing dividend: %w", err)
	}
	b, err := gf2.Parse(strings.TrimSpace(divisor))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing divisor: %w", err)
	}
	return a, b, nil
}

// ValidateBits checks a single free-standing bit string, such as a
// multiplication factor or CRC message, which may be any length >= 1.
func ValidateBits(name, s string) (gf2.Bits, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%s cannot be empty", name)
	}
	b, err := gf2.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return b, nil
}
