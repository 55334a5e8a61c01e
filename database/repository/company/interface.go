// File: database/repository/company/interface.go
package companyRepo

import (
	"context"

	"curbe/database"
	"curbe/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id string) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, id string) error
}

type mongoCompanyRepo struct {
	coll *mongo.Collection
}

// NewMongoCompanyRepo constructs a new MongoDB CompanyRepository.
func NewMongoCompanyRepo() CompanyRepository {
	return &mongoCompanyRepo{
		coll: database.DB().Collection("companies"),
	}
}
