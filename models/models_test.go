package models

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failedFields(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	var vErrs validator.ValidationErrors
	require.ErrorAs(t, err, &vErrs)
	fields := make(map[string]string)
	for _, fe := range vErrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}

func TestUserValidation(t *testing.T) {
	fields := failedFields(t, Validate.Struct(User{}))
	assert.Equal(t, "required", fields["name"])
	assert.Equal(t, "required", fields["email"])
	assert.Equal(t, "required", fields["role"])

	user := User{Name: "Asha Rao", Email: "asha@example.com", Role: RolePatient}
	assert.NoError(t, Validate.Struct(user))

	user.Role = "NURSE"
	fields = failedFields(t, Validate.Struct(user))
	assert.Equal(t, "oneof", fields["role"])

	user.Role = RolePatient
	user.Email = "not-an-email"
	fields = failedFields(t, Validate.Struct(user))
	assert.Equal(t, "email", fields["email"])
}

func TestDoctorValidation(t *testing.T) {
	doctor := Doctor{
		UserID:          "user-1",
		ClinicID:        "clinic-1",
		Specialization:  "cardiology",
		LicenseNumber:   "MCI-1234",
		ExperienceYears: 8,
		ConsultationFee: 600,
	}
	assert.NoError(t, Validate.Struct(doctor))

	doctor.ExperienceYears = -1
	fields := failedFields(t, Validate.Struct(doctor))
	assert.Equal(t, "gte", fields["experienceYears"])

	fields = failedFields(t, Validate.Struct(Doctor{}))
	assert.Equal(t, "required", fields["userId"])
	assert.Equal(t, "required", fields["clinicId"])
	assert.Equal(t, "required", fields["specialization"])
	assert.Equal(t, "required", fields["licenseNumber"])
}

func TestPatientValidation(t *testing.T) {
	patient := Patient{
		UserID:      "user-2",
		DateOfBirth: "1990-04-17",
		Gender:      "female",
	}
	assert.NoError(t, Validate.Struct(patient))

	patient.DateOfBirth = "17-04-1990"
	fields := failedFields(t, Validate.Struct(patient))
	assert.Equal(t, "datetime", fields["dateOfBirth"])

	patient.DateOfBirth = "1990-04-17"
	patient.Gender = "unknown"
	fields = failedFields(t, Validate.Struct(patient))
	assert.Equal(t, "oneof", fields["gender"])
}

func TestDecodeInto(t *testing.T) {
	doc := map[string]interface{}{
		"userId":          "user-1",
		"clinicId":        "clinic-9",
		"specialization":  "dermatology",
		"licenseNumber":   "MCI-9",
		"experienceYears": 12.0,
		"consultationFee": 450.5,
		"unknownField":    "dropped on decode",
	}
	doctor := Doctor{}
	require.NoError(t, DecodeInto(doc, &doctor))
	assert.Equal(t, "clinic-9", doctor.ClinicID)
	assert.Equal(t, 12, doctor.ExperienceYears)
	assert.Equal(t, 450.5, doctor.ConsultationFee)
}

func TestRoleTables(t *testing.T) {
	role, ok := ParseRole("DOCTOR")
	require.True(t, ok)
	assert.Equal(t, RoleDoctor, role)

	_, ok = ParseRole("doctor")
	assert.False(t, ok)
	_, ok = ParseRole("")
	assert.False(t, ok)

	kind, ok := ProfileKindFor(RolePatient)
	require.True(t, ok)
	assert.Equal(t, "patients", kind.Collection)
	assert.Equal(t, "PATIENT:", kind.CacheKey)

	assert.Equal(t, "DOCTOR:user-1", CacheKey(RoleDoctor, "user-1"))
	assert.Equal(t, "ADMIN:user-2", CacheKey(RoleAdmin, "user-2"))
	assert.Equal(t, kind.CacheKey+"user-3", CacheKey(RolePatient, "user-3"))
}
