package request

import (
	"errors"
	"strings"
	"unicode"
)

const (
	maxNicknameLength = 20
	maxGuessLength    = 50
)

var (
	ErrNicknameEmpty    = errors.New("nickname must not be empty")
	ErrNicknameTooLong  = errors.New("nickname must be at most 20 characters")
	ErrNicknameInvalid  = errors.New("nickname may only contain letters, digits and spaces")
	ErrGuessEmpty       = errors.New("guess must not be empty")
	ErrGuessTooLong     = errors.New("guess must be at most 50 characters")
)

// Nickname validates and normalizes a player nickname: surrounding
// whitespace is stripped, and the rest must be 1-20 letters, digits or
// spaces.
func Nickname(raw string) (string, error) {
	nickname := strings.TrimSpace(raw)
	if nickname == "" {
		return "", ErrNicknameEmpty
	}
	if len([]rune(nickname)) > maxNicknameLength {
		return "", ErrNicknameTooLong
	}
	for _, r := range nickname {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' {
			return "", ErrNicknameInvalid
		}
	}
	return nickname, nil
}

// Guess validates a dragon word guess. Normalization for comparison
// happens later; this only bounds the input.
func Guess(raw string) (string, error) {
	guess := strings.TrimSpace(raw)
	if guess == "" {
		return "", ErrGuessEmpty
	}
	if len([]rune(guess)) > maxGuessLength {
		return "", ErrGuessTooLong
	}
	return guess, nil
}
