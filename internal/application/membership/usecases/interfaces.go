package usecases

import (
	"context"
	"time"

	"github.com/parlourcover/parlour/internal/infrastructure/document"
)

type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// BatchTransactionRunner commits a batch once and runs each item in a
// savepoint, so a failed item rolls back alone.
type BatchTransactionRunner interface {
	TransactionRunner
	RunInSavepoint(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics records membership rule outcomes. *metrics.Metrics satisfies it,
// including a nil pointer.
type Metrics interface {
	ObserveAgeLimit(exceeded bool)
	IncQuotaRejection(memberType string)
	IncPromotion()
	ObserveImport(start time.Time, accepted, rejected int)
}

// CertificateRenderer writes a certificate document and returns its path.
type CertificateRenderer interface {
	Certificate(d document.CertificateData) (string, error)
}
