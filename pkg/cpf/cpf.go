package cpf

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Length is the number of digits in a CPF.
const Length = 11

// ErrInvalidLength is returned when a candidate does not normalize to
// exactly Length digits.
var ErrInvalidLength = errors.New("cpf must have exactly 11 digits")

// Normalize returns the decimal digits of candidate in their original
// order, discarding everything else.
//
// Only runes of Unicode category Nd are kept, each mapped to its ASCII
// value, so full-width "５" and Arabic-Indic "٥" both read as "5".
// Numeric symbols that are not decimal digits, such as "½" or "㉑", are
// discarded. A candidate without digits yields an empty string.
func Normalize(candidate string) string {
	var b strings.Builder
	b.Grow(len(candidate))
	for _, r := range candidate {
		if d, ok := digitValue(r); ok {
			b.WriteByte(d)
		}
	}
	return b.String()
}

// digitValue maps a decimal digit rune of any script to its ASCII digit.
func digitValue(r rune) (byte, bool) {
	if !unicode.IsDigit(r) {
		return 0, false
	}
	if r >= '0' && r <= '9' {
		return byte(r), true
	}
	if folded := norm.NFKC.String(string(r)); len(folded) == 1 && folded[0] >= '0' && folded[0] <= '9' {
		return folded[0], true
	}

	// Nd digits come in contiguous runs starting at zero.
	zero := r
	for unicode.IsDigit(zero - 1) {
		zero--
	}
	return byte('0' + (r-zero)%10), true
}

// CheckDigit computes the check digit over the first n digits of a
// normalized digit string. Weights run from n+1 down to 2, so n=9 yields
// the first CPF check digit and n=10 the second.
func CheckDigit(digits string, n int) (int, error) {
	if n < 1 || n > len(digits) {
		return 0, fmt.Errorf("cannot compute check digit over %d of %d digits", n, len(digits))
	}

	sum := 0
	for i := 0; i < n; i++ {
		d := digits[i]
		if d < '0' || d > '9' {
			return 0, fmt.Errorf("non-digit %q at position %d", d, i)
		}
		sum += int(d-'0') * (n + 1 - i)
	}

	remainder := sum % 11
	if remainder < 2 {
		return 0, nil
	}
	return 11 - remainder, nil
}

// IsValid reports whether candidate is an acceptable CPF.
//
// A candidate is rejected when:
//   - it does not normalize to exactly 11 digits
//   - all 11 digits are identical (e.g. "000.000.000-00")
//   - the first check digit does not match the tenth digit
//
// The second check digit is not verified. See IsValidStrict.
func IsValid(candidate string) bool {
	digits, ok := significantDigits(candidate)
	if !ok {
		return false
	}
	return checkDigitMatches(digits, 9)
}

// IsValidStrict is IsValid with the second check digit verified as well.
func IsValidStrict(candidate string) bool {
	digits, ok := significantDigits(candidate)
	if !ok {
		return false
	}
	return checkDigitMatches(digits, 9) && checkDigitMatches(digits, 10)
}

// Format returns candidate in the canonical DDD.DDD.DDD-DD form.
//
// Callers are expected to format only candidates that passed IsValid;
// any candidate that does not normalize to 11 digits returns
// ErrInvalidLength.
func Format(candidate string) (string, error) {
	digits := Normalize(candidate)
	if len(digits) != Length {
		return "", fmt.Errorf("%w: got %d", ErrInvalidLength, len(digits))
	}
	return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:11], nil
}

func significantDigits(candidate string) (string, bool) {
	digits := Normalize(candidate)
	if len(digits) != Length {
		return "", false
	}
	if strings.Count(digits, digits[:1]) == Length {
		return "", false
	}
	return digits, true
}

func checkDigitMatches(digits string, n int) bool {
	want, err := CheckDigit(digits, n)
	if err != nil {
		return false
	}
	return int(digits[n]-'0') == want
}
