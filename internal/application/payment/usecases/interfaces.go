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

// Metrics records payment and batch outcomes. *metrics.Metrics satisfies it.
type Metrics interface {
	IncPaymentRecorded()
	ObserveBatchJob(job string, start time.Time, changed, failed int)
}

// InvoiceRenderer writes an invoice document and returns its path.
type InvoiceRenderer interface {
	Invoice(d document.InvoiceData) (string, error)
}
