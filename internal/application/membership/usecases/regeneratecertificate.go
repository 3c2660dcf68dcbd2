package usecases

import (
	"context"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/membership/dto"
	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/shared/biztime"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

// RegenerateCertificateUseCase renders a fresh certificate on request and
// notifies the parlour that it was issued.
type RegenerateCertificateUseCase struct {
	applicantRepo membership.ApplicantRepository
	certificates  *CertificateService
	effects       *EffectRunner
	logger        logger.Interface
}

func NewRegenerateCertificateUseCase(
	applicantRepo membership.ApplicantRepository,
	certificates *CertificateService,
	effects *EffectRunner,
	logger logger.Interface,
) *RegenerateCertificateUseCase {
	return &RegenerateCertificateUseCase{
		applicantRepo: applicantRepo,
		certificates:  certificates,
		effects:       effects,
		logger:        logger,
	}
}

func (uc *RegenerateCertificateUseCase) Execute(ctx context.Context, actor common.Actor, applicantID uint) (*dto.ApplicantDTO, error) {
	a, err := loadActiveApplicant(ctx, uc.applicantRepo, actor, applicantID)
	if err != nil {
		return nil, err
	}
	if err := uc.certificates.Issue(ctx, a); err != nil {
		uc.logger.Errorw("failed to issue certificate", "error", err, "applicant_id", a.ID())
		return nil, common.TranslateError(err)
	}

	uc.effects.Publish(membership.NewCertificateIssuedEvent(a, biztime.NowUTC()))
	return dto.ToApplicantDTO(a, nil, nil), nil
}
