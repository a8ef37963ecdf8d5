package gf2

import (
	"errors"
	"fmt"
)

// ErrInvalidGenerator is returned when a CRC generator is shorter than
// two bits or does not start with 1.
var ErrInvalidGenerator = errors.New("gf2: generator must be at least 2 bits and start with 1")

func checkGenerator(g Bits) error {
	if g.Len() < 2 || g.Leading() != 1 {
		return fmt.Errorf("%w (got %q)", ErrInvalidGenerator, g.String())
	}
	return nil
}

// Augment appends generator.Len()-1 zero bits to message, the dividend
// whose remainder is the CRC.
func Augment(message, generator Bits) Bits {
	return message.Concat(Zeros(generator.Len() - 1))
}

// CRC returns the check value of message under generator: the remainder
// of message·x^k divided by the generator, where k is its degree.
func CRC(message, generator Bits) (Bits, error) {
	if err := checkGenerator(generator); err != nil {
		return nil, err
	}
	_, rem := Divide(Augment(message, generator), generator)
	return rem, nil
}

// Codeword returns message followed by its CRC.
func Codeword(message, generator Bits) (Bits, error) {
	crc, err := CRC(message, generator)
	if err != nil {
		return nil, err
	}
	return message.Concat(crc), nil
}

// Verify reports whether codeword divides evenly by generator, i.e.
// whether its trailing bits are a correct CRC of the leading ones.
func Verify(codeword, generator Bits) (bool, error) {
	if err := checkGenerator(generator); err != nil {
		return false, err
	}
	_, rem := Divide(codeword, generator)
	return rem.IsZero(), nil
}
