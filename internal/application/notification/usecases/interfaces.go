package usecases

import (
	"github.com/parlourcover/parlour/internal/infrastructure/email"
)

// EmailSender delivers one composed email.
type EmailSender interface {
	Send(msg email.Message) error
}

// DocumentResolver turns a stored document path into an absolute file path.
type DocumentResolver interface {
	Resolve(rel string) (string, error)
}
