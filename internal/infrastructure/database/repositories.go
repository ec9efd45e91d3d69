package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/polarsource/organization-service/internal/adapter/repository"
	domainRepo "github.com/polarsource/organization-service/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Organization domainRepo.OrganizationRepository
	Account      domainRepo.AccountRepository
	Product      domainRepo.ProductRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Organization: repository.NewOrganizationRepository(db, logger),
		Account:      repository.NewAccountRepository(db, logger),
		Product:      repository.NewProductRepository(db, logger),
	}
}
