package services

import (
	"crypto/rand"
	"math/big"
)

const (
	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	upperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars = "0123456789"
	allChars   = lowerChars + upperChars + digitChars

	generatedPasswordLen = 10
)

func randIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the platform source is broken
		panic(err)
	}
	return int(v.Int64())
}

// generateVerificationCode returns a 6-digit numeric code, zero-padded.
func generateVerificationCode() string {
	code := make([]byte, 6)
	for i := range code {
		code[i] = digitChars[randIndex(len(digitChars))]
	}
	return string(code)
}

// generatePassword builds a random password that always satisfies the
// password policy: one lower, one upper and one digit are guaranteed, the
// rest are drawn from the full alphabet, and the result is shuffled so the
// guaranteed characters do not sit at fixed positions.
func generatePassword() string {
	chars := make([]byte, 0, generatedPasswordLen)
	chars = append(chars,
		lowerChars[randIndex(len(lowerChars))],
		upperChars[randIndex(len(upperChars))],
		digitChars[randIndex(len(digitChars))],
	)
	for len(chars) < generatedPasswordLen {
		chars = append(chars, allChars[randIndex(len(allChars))])
	}
	for i := len(chars) - 1; i > 0; i-- {
		j := randIndex(i + 1)
		chars[i], chars[j] = chars[j], chars[i]
	}
	return string(chars)
}
