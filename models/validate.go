package models

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
)

// Validate is the shared schema validator. Field names in errors follow
// the json tags so clients see the names they sent.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

/*
* Re-validating a merged document means getting it back into its typed
* model first. A bson round trip reuses the same tags the collections use,
* so whatever mongo accepts the validator sees
 */
func DecodeInto(doc map[string]interface{}, out interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}
