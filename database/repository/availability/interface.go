// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"
	"log"

	"curbe/database"
	"curbe/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type AvailabilityRepository interface {
	Get(ctx context.Context, companyID string) (*models.AvailabilityConfig, error)
	Put(ctx context.Context, config *models.AvailabilityConfig) error
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new MongoDB AvailabilityRepository.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	r := &mongoAvailabilityRepo{
		coll: database.DB().Collection("availability_configs"),
	}
	if err := r.EnsureIndexes(); err != nil {
		log.Printf("failed to ensure availability config indexes: %v", err)
	}
	return r
}
