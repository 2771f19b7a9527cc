package services

import (
	"net/http"
	"testing"

	"MediLink/config/authorization"
	"MediLink/config/db"
	"MediLink/models"
	"MediLink/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestStripProtectedFields(t *testing.T) {
	data := map[string]interface{}{
		"_id":            "x",
		"id":             "doctor-2",
		"userId":         "someone-else",
		"appointments":   []string{"a"},
		"createdAt":      "x",
		"createdBy":      "x",
		"updatedAt":      "x",
		"updatedBy":      "x",
		"avatarURL":      "http://evil.example/avatar.png",
		"specialization": "cardiology",
	}
	stripProtectedFields(data)
	assert.Equal(t, map[string]interface{}{"specialization": "cardiology"}, data)
}

func TestStringSlice(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, stringSlice([]string{"a", "b"}))
	assert.Equal(t, []string{"a", "b"}, stringSlice(primitive.A{"a", "b"}))
	assert.Equal(t, []string{"a"}, stringSlice([]interface{}{"a", 42}))
	assert.Nil(t, stringSlice(nil))
	assert.Nil(t, stringSlice("a"))
}

func TestCreateDoctorProfileRequiresIdentity(t *testing.T) {
	_, err := CreateDoctorProfile(testContext(t), map[string]interface{}{}, nil)
	var apiErr *util.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestCreateDoctorProfileRejectsSecondProfile(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("one profile per user", func(mt *mtest.T) {
		db.Client = mt.Client
		db.Database = mt.Client.Database("medilink")
		defer func() { db.Client = nil; db.Database = nil }()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "medilink.doctors", mtest.FirstBatch, bson.D{{Key: "n", Value: 1}}))

		c := identityContext(mt.T, models.RoleDoctor, "doctor-1")
		_, err := CreateDoctorProfile(c, map[string]interface{}{
			"clinicId":       "clinic-1",
			"specialization": "cardiology",
			"licenseNumber":  "MCI-1234",
		}, nil)

		var apiErr *util.APIError
		require.ErrorAs(mt, err, &apiErr)
		assert.Equal(mt, http.StatusConflict, apiErr.Status)
		assert.Equal(mt, util.DOCTOR_PROFILE_EXISTS, apiErr.Message)
	})
}

func TestUpdateDoctorProfileRejectsEmptyPayload(t *testing.T) {
	c := identityContext(t, models.RoleDoctor, "doctor-1")
	var apiErr *util.APIError

	_, err := UpdateDoctorProfile(c, map[string]interface{}{}, nil)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, util.NOTHING_TO_UPDATE, apiErr.Message)

	// protected fields alone do not count as an update
	_, err = UpdateDoctorProfile(c, map[string]interface{}{"id": "doctor-2", "createdBy": "someone"}, nil)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, util.NOTHING_TO_UPDATE, apiErr.Message)
}

func TestUpdateDoctorProfileRejectsBadFields(t *testing.T) {
	c := identityContext(t, models.RoleDoctor, "doctor-1")
	var vErr *util.ValidationError

	_, err := UpdateDoctorProfile(c, map[string]interface{}{"clinicId": "   "}, nil)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "clinicId not provided", vErr.Fields["clinicId"])

	_, err = UpdateDoctorProfile(c, map[string]interface{}{"experienceYears": "a lot"}, nil)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "experienceYears must be a number", vErr.Fields["experienceYears"])
}

func TestFetchDoctorProfile(t *testing.T) {
	_, err := FetchDoctorProfile(testContext(t))
	var apiErr *util.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	_, err = FetchDoctorProfile(identityContext(t, models.RoleDoctor, "doctor-1"))
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, util.DOCTOR_PROFILE_NOT_FOUND, apiErr.Message)

	profile := map[string]interface{}{"id": "doctor-1", "specialization": "cardiology", "appointments": []interface{}{}}
	c := testContext(t)
	c.Set(authorization.IdentityKey, authorization.Identity{
		UserID:    "user-1",
		Role:      models.RoleDoctor,
		ProfileID: "doctor-1",
		Profile:   profile,
	})
	got, err := FetchDoctorProfile(c)
	require.NoError(t, err)
	assert.Equal(t, profile, got)
}

func TestFetchDoctorsByClinicWithoutMatches(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("zero matches answer 404 with a hint", func(mt *mtest.T) {
		db.Client = mt.Client
		db.Database = mt.Client.Database("medilink")
		defer func() { db.Client = nil; db.Database = nil }()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "medilink.doctors", mtest.FirstBatch))

		doctors, err := FetchDoctorsByClinic(testContext(mt.T), "clinic-404")
		assert.Nil(mt, doctors)

		var apiErr *util.APIError
		require.ErrorAs(mt, err, &apiErr)
		assert.Equal(mt, http.StatusNotFound, apiErr.Status)
		assert.Equal(mt, util.NO_DOCTORS_IN_CLINIC, apiErr.Message)
		assert.Equal(mt, util.TRY_ANOTHER_CLINIC, apiErr.Suggestion)
	})
}
