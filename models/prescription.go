package models

import "time"

type Medication struct {
	Name         string `json:"name" bson:"name"`
	Dosage       string `json:"dosage" bson:"dosage"`
	Frequency    string `json:"frequency" bson:"frequency"`
	Duration     string `json:"duration" bson:"duration"`
	Instructions string `json:"instructions,omitempty" bson:"instructions,omitempty"`
}

type Prescription struct {
	ID            string       `json:"id" bson:"id"`
	AppointmentID string       `json:"appointmentId" bson:"appointmentId"`
	DoctorID      string       `json:"doctorId" bson:"doctorId"`
	PatientID     string       `json:"patientId" bson:"patientId"`
	Diagnosis     string       `json:"diagnosis" bson:"diagnosis"`
	Medications   []Medication `json:"medications" bson:"medications"`
	Tests         []string     `json:"tests" bson:"tests"`
	Notes         string       `json:"notes,omitempty" bson:"notes,omitempty"`
	FollowUpDate  string       `json:"followUpDate,omitempty" bson:"followUpDate,omitempty"`
	CreatedAt     time.Time    `json:"createdAt" bson:"createdAt"`
	CreatedBy     string       `json:"createdBy" bson:"createdBy"`
	UpdatedAt     time.Time    `json:"updatedAt" bson:"updatedAt"`
	UpdatedBy     string       `json:"updatedBy" bson:"updatedBy"`
}
