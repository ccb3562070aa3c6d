// Package cpf validates and formats Brazilian individual taxpayer
// identifiers (CPF numbers).
//
// # Identifier Shape
//
// A CPF is eleven decimal digits, conventionally written as
// DDD.DDD.DDD-DD. The last two digits are check digits computed from a
// weighted sum of the digits before them. Punctuation, whitespace and
// letters in a candidate string are ignored: only digits are kept.
//
// # Check Digits
//
// IsValid verifies only the FIRST check digit (the tenth digit). The
// eleventh digit is never inspected, so a candidate whose second check
// digit is wrong is still accepted. This matches the behaviour of the
// tool this package was built for. Use IsValidStrict when both digits
// must be verified.
//
// # Usage
//
//	if cpf.IsValid(raw) {
//	    formatted, _ := cpf.Format(raw)
//	    fmt.Println(formatted) // 529.982.247-25
//	}
//
// All functions are pure and safe for concurrent use.
package cpf
