package migration

import (
	"github.com/parlourcover/parlour/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every persisted model, in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.ParlourModel{},
		&models.ConsultantModel{},
		&models.PlanModel{},
		&models.ApplicantModel{},
		&models.MainMemberModel{},
		&models.ExtendedMemberModel{},
		&models.PaymentModel{},
		&models.NotificationModel{},
	}
}
