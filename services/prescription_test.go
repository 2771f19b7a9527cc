package services

import (
	"net/http"
	"testing"

	"MediLink/config/db"
	"MediLink/models"
	"MediLink/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestValidateMedicationEntries(t *testing.T) {
	meds, fields := validateMedicationEntries([]interface{}{
		map[string]interface{}{
			"name":         " Amoxicillin ",
			"dosage":       "500mg",
			"frequency":    "thrice daily",
			"duration":     "5 days",
			"instructions": " after food ",
		},
		map[string]interface{}{
			"name":      "Paracetamol",
			"dosage":    "650mg",
			"frequency": "as needed",
			"duration":  "3 days",
		},
	})
	require.Nil(t, fields)
	require.Len(t, meds, 2)
	assert.Equal(t, "Amoxicillin", meds[0].Name)
	assert.Equal(t, "after food", meds[0].Instructions)
	assert.Empty(t, meds[1].Instructions)
}

func TestValidateMedicationEntriesReportsEveryError(t *testing.T) {
	meds, fields := validateMedicationEntries([]interface{}{
		map[string]interface{}{"name": "Amoxicillin", "dosage": "500mg", "frequency": "thrice daily", "duration": "5 days"},
		map[string]interface{}{"name": "  ", "dosage": "650mg"},
		"paracetamol",
	})
	assert.Nil(t, meds)
	assert.Equal(t, "name not provided", fields["medications[1].name"])
	assert.Equal(t, "frequency not provided", fields["medications[1].frequency"])
	assert.Equal(t, "duration not provided", fields["medications[1].duration"])
	assert.Equal(t, "must be an object", fields["medications[2]"])
	assert.NotContains(t, fields, "medications[0].name")
}

func TestCreatePrescriptionRequiresIdentity(t *testing.T) {
	_, err := CreatePrescription(testContext(t), map[string]interface{}{}, "appointment-1")
	var apiErr *util.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestCreatePrescriptionRequiresMedications(t *testing.T) {
	c := identityContext(t, models.RoleDoctor, "doctor-1")

	for _, data := range []map[string]interface{}{
		{},
		{"medications": []interface{}{}},
		{"medications": "Amoxicillin"},
	} {
		_, err := CreatePrescription(c, data, "appointment-1")
		var vErr *util.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, util.MEDICINES_MUST_BE_ARRAY, vErr.Fields["medications"])
	}
}

// The ownership filter makes another doctor's appointment indistinguishable
// from one that does not exist.
func TestCreatePrescriptionUnownedAppointment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unowned appointment reads as missing", func(mt *mtest.T) {
		db.Client = mt.Client
		db.Database = mt.Client.Database("medilink")
		defer func() { db.Client = nil; db.Database = nil }()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "medilink.appointments", mtest.FirstBatch))

		c := identityContext(mt.T, models.RoleDoctor, "doctor-1")
		_, err := CreatePrescription(c, map[string]interface{}{
			"diagnosis": "bacterial infection",
			"medications": []interface{}{
				map[string]interface{}{
					"name":      "Amoxicillin",
					"dosage":    "500mg",
					"frequency": "thrice daily",
					"duration":  "5 days",
				},
			},
		}, "appointment-9")

		var apiErr *util.APIError
		require.ErrorAs(mt, err, &apiErr)
		assert.Equal(mt, http.StatusNotFound, apiErr.Status)
		assert.Equal(mt, util.APPOINTMENT_NOT_FOUND, apiErr.Message)
	})
}

func TestUniqueIds(t *testing.T) {
	rows := []map[string]interface{}{
		{"doctorId": "d1"},
		{"doctorId": "d2"},
		{"doctorId": "d1"},
		{"patientId": "p1"},
		{"doctorId": 7},
	}
	assert.Equal(t, []string{"d1", "d2"}, uniqueIds(rows, "doctorId"))
	assert.Empty(t, uniqueIds(nil, "doctorId"))
}
