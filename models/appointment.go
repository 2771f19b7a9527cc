package models

import "time"

// Appointment status values.
const (
	AppointmentBooked    = "booked"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentExpired   = "expired"
)

type Appointment struct {
	ID             string    `json:"id" bson:"id"`
	DoctorID       string    `json:"doctorId" bson:"doctorId" validate:"required"`
	PatientID      string    `json:"patientId" bson:"patientId" validate:"required"`
	Date           time.Time `json:"date" bson:"date"`
	TimeSlot       string    `json:"timeSlot" bson:"timeSlot" validate:"required"`
	Reason         string    `json:"reason" bson:"reason" validate:"required"`
	Status         string    `json:"status" bson:"status"`
	PrescriptionID string    `json:"prescriptionId,omitempty" bson:"prescriptionId,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	CreatedBy      string    `json:"createdBy" bson:"createdBy"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
	UpdatedBy      string    `json:"updatedBy" bson:"updatedBy"`
}
