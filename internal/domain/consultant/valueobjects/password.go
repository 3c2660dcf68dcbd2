package valueobjects

import (
	"fmt"
	"unicode"
)

// Password is a plain-text password that passed the strength rules. It is
// never stored; only its hash is.
type Password struct {
	value string
}

func NewPassword(plainPassword string) (*Password, error) {
	if len(plainPassword) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters long")
	}
	// bcrypt ignores input past 72 bytes
	if len(plainPassword) > 72 {
		return nil, fmt.Errorf("password must not exceed 72 characters")
	}

	var hasLetter, hasNumber bool
	for _, char := range plainPassword {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}
	if !hasLetter || !hasNumber {
		return nil, fmt.Errorf("password must contain at least one letter and one number")
	}

	return &Password{value: plainPassword}, nil
}

func (p *Password) String() string {
	return p.value
}
