package util

import (
	"errors"
	"strconv"
	"testing"

	"MediLink/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTrimmedString(t *testing.T) {
	data := map[string]interface{}{"name": "  Asha Rao  "}
	require.NoError(t, GetTrimmedString(data, "name"))
	assert.Equal(t, "Asha Rao", data["name"])

	err := GetTrimmedString(map[string]interface{}{}, "email")
	require.Error(t, err)
	assert.Equal(t, "email not provided", err.Error())

	err = GetTrimmedString(map[string]interface{}{"email": "   "}, "email")
	require.Error(t, err)
	assert.Equal(t, "email not provided", err.Error())

	err = GetTrimmedString(map[string]interface{}{"email": 42}, "email")
	require.Error(t, err)
	assert.Equal(t, "email must be a string", err.Error())
}

func TestTrimIfExists(t *testing.T) {
	data := map[string]interface{}{}
	require.NoError(t, TrimIfExists(data, "biography"))
	_, exists := data["biography"]
	assert.False(t, exists)

	data["biography"] = " senior cardiologist "
	require.NoError(t, TrimIfExists(data, "biography"))
	assert.Equal(t, "senior cardiologist", data["biography"])

	data["biography"] = "   "
	assert.Error(t, TrimIfExists(data, "biography"))
}

func TestCoerceFloat(t *testing.T) {
	data := map[string]interface{}{"consultationFee": " 450.50 "}
	require.NoError(t, CoerceFloat(data, "consultationFee"))
	assert.Equal(t, 450.50, data["consultationFee"])

	data = map[string]interface{}{"consultationFee": 300.0}
	require.NoError(t, CoerceFloat(data, "consultationFee"))
	assert.Equal(t, 300.0, data["consultationFee"])

	require.NoError(t, CoerceFloat(map[string]interface{}{}, "consultationFee"))

	err := CoerceFloat(map[string]interface{}{"consultationFee": "cheap"}, "consultationFee")
	require.Error(t, err)
	assert.Equal(t, "consultationFee must be a number", err.Error())
}

func TestGenerateOTP(t *testing.T) {
	otp, err := GenerateOTP()
	require.NoError(t, err)
	assert.Len(t, otp, 6)

	n, err := strconv.Atoi(otp)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 0)
	assert.Less(t, n, 1000000)
}

func TestFormatValidationErrors(t *testing.T) {
	err := models.Validate.Struct(models.User{})
	require.Error(t, err)
	fields := FormatValidationErrors(err)
	assert.Equal(t, "name is required", fields["name"])
	assert.Equal(t, "email is required", fields["email"])
	assert.Equal(t, "role is required", fields["role"])

	err = models.Validate.Struct(models.User{Name: "Asha Rao", Email: "asha@example.com", Role: "NURSE"})
	require.Error(t, err)
	fields = FormatValidationErrors(err)
	assert.Equal(t, "role must be one of DOCTOR PATIENT ADMIN", fields["role"])

	fields = FormatValidationErrors(errors.New("unexpected EOF"))
	assert.Equal(t, "unexpected EOF", fields["body"])
}
