package request

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNickname(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "plain", input: "Bob", want: "Bob"},
		{name: "trims whitespace", input: "  Bob ", want: "Bob"},
		{name: "spaces inside allowed", input: "Bob the Brave", want: "Bob the Brave"},
		{name: "digits allowed", input: "Player 2", want: "Player 2"},
		{name: "unicode letters allowed", input: "Zoë", want: "Zoë"},
		{name: "empty", input: "", wantErr: ErrNicknameEmpty},
		{name: "only whitespace", input: "   ", wantErr: ErrNicknameEmpty},
		{name: "punctuation rejected", input: "Bob!", wantErr: ErrNicknameInvalid},
		{name: "max length ok", input: strings.Repeat("a", 20), want: strings.Repeat("a", 20)},
		{name: "too long", input: strings.Repeat("a", 21), wantErr: ErrNicknameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Nickname(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGuess(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "plain", input: "pizza", want: "pizza"},
		{name: "trims whitespace", input: "  pizza ", want: "pizza"},
		{name: "case preserved", input: "PiZzA", want: "PiZzA"},
		{name: "empty", input: "", wantErr: ErrGuessEmpty},
		{name: "only whitespace", input: "  ", wantErr: ErrGuessEmpty},
		{name: "max length ok", input: strings.Repeat("a", 50), want: strings.Repeat("a", 50)},
		{name: "too long", input: strings.Repeat("a", 51), wantErr: ErrGuessTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Guess(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
