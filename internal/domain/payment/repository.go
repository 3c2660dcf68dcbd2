package payment

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	Update(ctx context.Context, payment *Payment) error
	GetByID(ctx context.Context, id uint) (*Payment, error)
	ListByApplicantID(ctx context.Context, applicantID uint, page, pageSize int) ([]*Payment, int64, error)
	// LatestDateByApplicantID returns the date of the newest payment, or nil
	// when the applicant never paid.
	LatestDateByApplicantID(ctx context.Context, applicantID uint) (*time.Time, error)
}
