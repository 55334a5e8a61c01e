package company

import (
	"context"
	"time"

	companyRepo "curbe/database/repository/company"
	"curbe/models"
	"curbe/services/scheduling"
)

// Service manages tenant records. Appointments and availability configs
// hang off the company ID this service hands out.
type Service interface {
	Register(ctx context.Context, reg models.CompanyRegistration) (*models.Company, error)
	GetByID(ctx context.Context, id string) (*models.Company, error)
}

type DefaultService struct {
	Repo companyRepo.CompanyRepository
}

func (s *DefaultService) Register(ctx context.Context, reg models.CompanyRegistration) (*models.Company, error) {
	tz := reg.Timezone
	if tz == "" {
		tz = "UTC"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, scheduling.NewValidationError(map[string]string{
			"timezone": "must be a valid IANA timezone name",
		})
	}

	c := &models.Company{
		Name:     reg.Name,
		Email:    reg.Email,
		Timezone: tz,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *DefaultService) GetByID(ctx context.Context, id string) (*models.Company, error) {
	return s.Repo.GetByID(ctx, id)
}
