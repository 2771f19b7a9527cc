package models

import "time"

type Patient struct {
	ID           string    `json:"id" bson:"id"`
	UserID       string    `json:"userId" bson:"userId" validate:"required"`
	DateOfBirth  string    `json:"dateOfBirth" bson:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Gender       string    `json:"gender" bson:"gender" validate:"required,oneof=male female other"`
	BloodGroup   string    `json:"bloodGroup,omitempty" bson:"bloodGroup,omitempty"`
	Address      string    `json:"address,omitempty" bson:"address,omitempty"`
	Allergies    []string  `json:"allergies" bson:"allergies"`
	AvatarURL    string    `json:"avatarURL,omitempty" bson:"avatarURL,omitempty"`
	Appointments []string  `json:"appointments" bson:"appointments"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	CreatedBy    string    `json:"createdBy" bson:"createdBy"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
	UpdatedBy    string    `json:"updatedBy" bson:"updatedBy"`
}
