// File: database/repository/company/company_mongo.go
package companyRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"curbe/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrCompanyNotFound is returned when no company matches the given ID.
var ErrCompanyNotFound = errors.New("company not found")

func (r *mongoCompanyRepo) Create(ctx context.Context, company *models.Company) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, company); err != nil {
		return fmt.Errorf("failed to insert company: %w", err)
	}
	return nil
}

func (r *mongoCompanyRepo) GetByID(ctx context.Context, id string) (*models.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var company models.Company
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&company)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to fetch company %s: %w", id, err)
	}
	return &company, nil
}

func (r *mongoCompanyRepo) Update(ctx context.Context, company *models.Company) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	company.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": company.ID}, company)
	if err != nil {
		return fmt.Errorf("failed to update company %s: %w", company.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *mongoCompanyRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete company %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
