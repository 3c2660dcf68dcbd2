package http

import (
	"gorm.io/gorm"

	"github.com/parlourcover/parlour/internal/domain/consultant"
	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/domain/notification"
	"github.com/parlourcover/parlour/internal/domain/parlour"
	"github.com/parlourcover/parlour/internal/domain/payment"
	"github.com/parlourcover/parlour/internal/domain/plan"
	"github.com/parlourcover/parlour/internal/infrastructure/repository"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	parlourRepo        parlour.Repository
	consultantRepo     consultant.Repository
	planRepo           plan.Repository
	applicantRepo      membership.ApplicantRepository
	mainMemberRepo     membership.MainMemberRepository
	extendedMemberRepo membership.ExtendedMemberRepository
	paymentRepo        payment.Repository
	notificationRepo   notification.Repository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		parlourRepo:        repository.NewParlourRepository(db, log),
		consultantRepo:     repository.NewConsultantRepository(db, log),
		planRepo:           repository.NewPlanRepository(db, log),
		applicantRepo:      repository.NewApplicantRepository(db, log),
		mainMemberRepo:     repository.NewMainMemberRepository(db, log),
		extendedMemberRepo: repository.NewExtendedMemberRepository(db, log),
		paymentRepo:        repository.NewPaymentRepository(db, log),
		notificationRepo:   repository.NewNotificationRepository(db),
	}
}
