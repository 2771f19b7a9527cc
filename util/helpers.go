package util

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

/*
* Assert the field exists on the payload as a non-empty string
* Write the trimmed value back so later readers see clean data
 */
func GetTrimmedString(data map[string]interface{}, field string) error {
	raw, exists := data[field]
	if !exists {
		return fmt.Errorf("%s not provided", field)
	}
	val, ok := raw.(string)
	if !ok {
		return fmt.Errorf("%s must be a string", field)
	}
	val = strings.TrimSpace(val)
	if val == "" {
		return fmt.Errorf("%s not provided", field)
	}
	data[field] = val
	return nil
}

/*
* Same as GetTrimmedString but tolerates a missing field
 */
func TrimIfExists(data map[string]interface{}, field string) error {
	if _, exists := data[field]; !exists {
		return nil
	}
	return GetTrimmedString(data, field)
}

/*
* Multipart form values always arrive as strings, so numeric fields get
* converted before schema validation sees them
 */
func CoerceFloat(data map[string]interface{}, field string) error {
	raw, exists := data[field]
	if !exists {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("%s must be a number", field)
	}
	data[field] = f
	return nil
}

// GenerateOTP returns a 6 digit one-time password.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", errors.New("unable to generate OTP")
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

/*
* Flatten validator output into a field -> message map
* Field names follow the json tags registered on the validator
 */
func FormatValidationErrors(err error) map[string]string {
	fields := make(map[string]string)
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		fields["body"] = err.Error()
		return fields
	}
	for _, fe := range vErrs {
		fields[fe.Field()] = validationMessage(fe)
	}
	return fields
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}
