package models

import "time"

// Company is a tenant of the platform. Availability configuration and
// appointments hang off the company ID.
type Company struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Timezone  string    `bson:"timezone" json:"timezone"` // IANA zone, default for new configs
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CompanyRegistration is the payload for registering a new tenant.
type CompanyRegistration struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Timezone string `json:"timezone"`
}
