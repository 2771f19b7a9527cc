package models

import "time"

type Doctor struct {
	ID              string    `json:"id" bson:"id"`
	UserID          string    `json:"userId" bson:"userId" validate:"required"`
	ClinicID        string    `json:"clinicId" bson:"clinicId" validate:"required"`
	Specialization  string    `json:"specialization" bson:"specialization" validate:"required"`
	LicenseNumber   string    `json:"licenseNumber" bson:"licenseNumber" validate:"required"`
	ExperienceYears int       `json:"experienceYears" bson:"experienceYears" validate:"gte=0"`
	ConsultationFee float64   `json:"consultationFee" bson:"consultationFee" validate:"gte=0"`
	Biography       string    `json:"biography,omitempty" bson:"biography,omitempty"`
	AvatarURL       string    `json:"avatarURL,omitempty" bson:"avatarURL,omitempty"`
	Appointments    []string  `json:"appointments" bson:"appointments"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	CreatedBy       string    `json:"createdBy" bson:"createdBy"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
	UpdatedBy       string    `json:"updatedBy" bson:"updatedBy"`
}
