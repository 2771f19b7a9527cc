package models

import "time"

type Admin struct {
	ID          string    `json:"id" bson:"id"`
	UserID      string    `json:"userId" bson:"userId" validate:"required"`
	Designation string    `json:"designation" bson:"designation" validate:"required"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
