package address

import "strings"

// Base58 charset (excludes 0, O, I, l)
const base58Charset = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// IsValidBase58Char checks if a character is valid in Base58 encoding.
func IsValidBase58Char(c rune) bool {
	return strings.ContainsRune(base58Charset, c)
}

// IsValidBase58 reports whether every character of s is in the Base58
// alphabet. The empty string is valid.
func IsValidBase58(s string) bool {
	return len(InvalidBase58Chars(s)) == 0
}

// InvalidBase58Chars returns invalid Base58 characters in the input.
func InvalidBase58Chars(s string) []rune {
	var invalid []rune
	for _, c := range s {
		if !IsValidBase58Char(c) {
			invalid = append(invalid, c)
		}
	}
	return invalid
}
