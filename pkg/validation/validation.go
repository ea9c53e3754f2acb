package validation

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidChannel is returned when an invalid channel name is provided.
	ErrInvalidChannel = errors.New("channel name must be 1 to 25 characters of lowercase letters, digits or underscores")
	// ErrInvalidNick is returned when an invalid nick is provided.
	ErrInvalidNick = errors.New("nick must be 1 to 25 characters of letters, digits or underscores")
)

const channelChars = "abcdefghijklmnopqrstuvwxyz0123456789_"

// ValidateChannel validates the provided Twitch channel name.
// Channel names are login names: lowercase letters, digits and underscores,
// up to 25 characters.
func ValidateChannel(channel string) error {
	if len(channel) == 0 || len(channel) > 25 {
		return ErrInvalidChannel
	}

	for _, r := range channel {
		if !strings.ContainsRune(channelChars, r) {
			return ErrInvalidChannel
		}
	}

	return nil
}

// ValidateNick validates the provided IRC nick. Nicks follow the same rules
// as channel names except uppercase letters are accepted and lowered by the
// server.
func ValidateNick(nick string) error {
	if err := ValidateChannel(strings.ToLower(nick)); err != nil {
		return ErrInvalidNick
	}

	return nil
}
