// File: database/repository/availability/availability_mongo.go
package availabilityRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"curbe/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrConfigNotFound is returned when a company has no stored configuration.
var ErrConfigNotFound = errors.New("availability config not found")

func (r *mongoAvailabilityRepo) Get(ctx context.Context, companyID string) (*models.AvailabilityConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var config models.AvailabilityConfig
	err := r.coll.FindOne(ctx, bson.M{"companyId": companyID}).Decode(&config)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to fetch availability config for company %s: %w", companyID, err)
	}
	return &config, nil
}

func (r *mongoAvailabilityRepo) Put(ctx context.Context, config *models.AvailabilityConfig) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	config.UpdatedAt = time.Now().UTC()
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"companyId": config.CompanyID}, config, opts); err != nil {
		return fmt.Errorf("failed to store availability config for company %s: %w", config.CompanyID, err)
	}
	return nil
}

// EnsureIndexes creates the necessary indexes on the availability_configs collection.
func (r *mongoAvailabilityRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "companyId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_company"),
	}
	if _, err := r.coll.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("failed to create availability config indexes: %w", err)
	}
	return nil
}
