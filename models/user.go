package models

import "time"

type User struct {
	ID            string    `json:"id" bson:"id"`
	Name          string    `json:"name" bson:"name" validate:"required,min=2"`
	Email         string    `json:"email" bson:"email" validate:"required,email"`
	PhoneNo       string    `json:"phoneNo" bson:"phoneNo"`
	Password      string    `json:"password,omitempty" bson:"password,omitempty"`
	Role          Role      `json:"role" bson:"role" validate:"required,oneof=DOCTOR PATIENT ADMIN"`
	IsActive      bool      `json:"isActive" bson:"isActive"`
	IsBlocked     bool      `json:"isBlocked" bson:"isBlocked"`
	LoginAttempts int       `json:"loginAttempts" bson:"loginAttempts"`
	Reset         bool      `json:"reset" bson:"reset"`
	OTPExpiry     time.Time `json:"otpExpiry,omitempty" bson:"otpExpiry,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}
