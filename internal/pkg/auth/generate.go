package auth

import (
	"crypto/rand"
	"math/big"
)

const (
	passwordLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	passwordDigits  = "0123456789"
)

// GeneratePassword produces a random initial password of the given length
// containing at least one letter and one digit. Used for batch-imported
// accounts without an explicit initial password.
func GeneratePassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	chars := passwordLetters + passwordDigits
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		if err != nil {
			return "", err
		}
		out[i] = chars[n.Int64()]
	}

	// Force the policy: first position a letter, last a digit.
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordLetters))))
	if err != nil {
		return "", err
	}
	out[0] = passwordLetters[n.Int64()]

	n, err = rand.Int(rand.Reader, big.NewInt(int64(len(passwordDigits))))
	if err != nil {
		return "", err
	}
	out[length-1] = passwordDigits[n.Int64()]

	return string(out), nil
}
