// Package validate checks user-supplied chore and profile fields before
// they reach the state container.
package validate

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	maxTitleLen = 100
	maxNameLen  = 50

	// MinReward and MaxReward bound a chore reward in sats.
	MinReward = 1
	MaxReward = 1_000_000
)

// ChoreTitle validates a chore title: required, at most 100 characters.
func ChoreTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(trimmed) > maxTitleLen {
		return errors.New("title must be 100 characters or less")
	}
	return nil
}

// Reward validates a chore reward amount in sats.
func Reward(reward int64) error {
	if reward < MinReward {
		return errors.New("reward must be at least 1 satoshi")
	}
	if reward > MaxReward {
		return errors.New("reward must be 1,000,000 satoshis or less")
	}
	return nil
}

// UserName validates a display name: required, at most 50 characters.
func UserName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New("name is required")
	}
	if utf8.RuneCountInString(trimmed) > maxNameLen {
		return errors.New("name must be 50 characters or less")
	}
	return nil
}

// PIN validates a parent-mode PIN: exactly 4 digits.
func PIN(pin string) error {
	if len(pin) != 4 {
		return errors.New("PIN must be exactly 4 digits")
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return errors.New("PIN must be exactly 4 digits")
		}
	}
	return nil
}
