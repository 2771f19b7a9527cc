package services

import (
	"errors"
	"log"
	"mime/multipart"
	"time"

	"MediLink/config/authorization"
	"MediLink/config/db"
	redis "MediLink/config/redis"
	"MediLink/models"
	"MediLink/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fields callers may never set or overwrite through profile payloads.
var protectedProfileFields = []string{"_id", "id", "userId", "appointments", "createdAt", "createdBy", "updatedAt", "updatedBy", "avatarURL"}

func stripProtectedFields(data map[string]interface{}) {
	for _, field := range protectedProfileFields {
		delete(data, field)
	}
}

func stringSlice(raw interface{}) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case primitive.A:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

/*
* One doctor profile per user, a second create answers a conflict
* Validation reports every offending field at once
* The optional document is uploaded only after the payload validated,
* a rejected payload never costs an upload
 */
func CreateDoctorProfile(c *gin.Context, data map[string]interface{}, file *multipart.FileHeader) (*models.Doctor, error) {
	identity, err := authorization.CurrentIdentity(c)
	if err != nil {
		return nil, util.Unauthorized(err.Error())
	}

	collection := db.OpenCollections(util.DoctorCollection)
	count, err := db.CountDocuments(c, collection, bson.M{"userId": identity.UserID})
	if err != nil {
		log.Println("Error from countDocuments: ", err)
		return nil, err
	}
	if count > 0 {
		return nil, util.Conflict(util.DOCTOR_PROFILE_EXISTS)
	}

	stripProtectedFields(data)
	for _, field := range []string{"clinicId", "specialization", "licenseNumber", "biography"} {
		if err := util.TrimIfExists(data, field); err != nil {
			return nil, util.FieldError(field, err.Error())
		}
	}
	for _, field := range []string{"experienceYears", "consultationFee"} {
		if err := util.CoerceFloat(data, field); err != nil {
			return nil, util.FieldError(field, err.Error())
		}
	}
	data["userId"] = identity.UserID

	doctor := models.Doctor{}
	if err := models.DecodeInto(data, &doctor); err != nil {
		log.Println("Error from decodeInto: ", err)
		return nil, util.BadRequest(err.Error())
	}
	if err := models.Validate.Struct(doctor); err != nil {
		return nil, util.NewValidationError(util.FormatValidationErrors(err))
	}

	if file != nil {
		url, err := DefaultUploader().Upload(file)
		if err != nil {
			log.Println("Error from upload: ", err)
			return nil, err
		}
		doctor.AvatarURL = url
	}

	now := time.Now()
	doctor.ID = uuid.NewString()
	doctor.Appointments = []string{}
	doctor.CreatedAt = now
	doctor.CreatedBy = identity.UserID
	doctor.UpdatedAt = now
	doctor.UpdatedBy = identity.UserID

	if _, err := db.CreateOne(c, collection, doctor); err != nil {
		log.Println("Error from createOne: ", err)
		return nil, err
	}

	key := models.CacheKey(identity.Role, identity.UserID)
	if err := redis.SetCache(c, key, doctor); err != nil {
		log.Println("Error from setCache: ", err)
	}
	return &doctor, nil
}

/*
* Merging nothing is a user error, not a silent no-op
* Submitted fields overwrite the stored document and the merged result
* must still satisfy the schema
* Cache entry is replaced so the next read sees the update
 */
func UpdateDoctorProfile(c *gin.Context, data map[string]interface{}, file *multipart.FileHeader) (map[string]interface{}, error) {
	identity, err := authorization.CurrentIdentity(c)
	if err != nil {
		return nil, util.Unauthorized(err.Error())
	}

	stripProtectedFields(data)
	if len(data) == 0 && file == nil {
		return nil, util.BadRequest(util.NOTHING_TO_UPDATE)
	}
	for _, field := range []string{"clinicId", "specialization", "licenseNumber", "biography"} {
		if err := util.TrimIfExists(data, field); err != nil {
			return nil, util.FieldError(field, err.Error())
		}
	}
	for _, field := range []string{"experienceYears", "consultationFee"} {
		if err := util.CoerceFloat(data, field); err != nil {
			return nil, util.FieldError(field, err.Error())
		}
	}

	collection := db.OpenCollections(util.DoctorCollection)
	filter := bson.M{"userId": identity.UserID}
	existing := make(map[string]interface{})
	if err := db.FindOne(c, collection, filter, &existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.NotFound(util.DOCTOR_PROFILE_NOT_FOUND)
		}
		log.Println("Error from findOne: ", err)
		return nil, err
	}

	if file != nil {
		url, err := DefaultUploader().Upload(file)
		if err != nil {
			log.Println("Error from upload: ", err)
			return nil, err
		}
		data["avatarURL"] = url
	}

	merged := make(map[string]interface{})
	for k, v := range existing {
		merged[k] = v
	}
	delete(merged, "_id")
	for k, v := range data {
		merged[k] = v
	}
	doctor := models.Doctor{}
	if err := models.DecodeInto(merged, &doctor); err != nil {
		log.Println("Error from decodeInto: ", err)
		return nil, util.BadRequest(err.Error())
	}
	if err := models.Validate.Struct(doctor); err != nil {
		return nil, util.NewValidationError(util.FormatValidationErrors(err))
	}

	set := bson.M{}
	for k, v := range data {
		set[k] = v
	}
	set["updatedAt"] = time.Now()
	set["updatedBy"] = identity.UserID

	if _, err := db.UpdateOne(c, collection, filter, bson.M{"$set": set}); err != nil {
		log.Println("Error from updateOne: ", err)
		return nil, err
	}

	updated := make(map[string]interface{})
	if err := db.FindOne(c, collection, filter, &updated); err != nil {
		log.Println("Error from findOne after update: ", err)
		return nil, err
	}

	key := models.CacheKey(identity.Role, identity.UserID)
	if err := redis.DeleteCache(c, key); err != nil {
		log.Println("Error from deleteCache: ", err)
	}
	if err := redis.SetCache(c, key, updated); err != nil {
		log.Println("Error from setCache: ", err)
	}
	return updated, nil
}

/*
* The middleware already resolved the profile, cached or fresh
* Appointments are populated only when the profile holds any ids,
* an empty list never costs a query
 */
func FetchDoctorProfile(c *gin.Context) (map[string]interface{}, error) {
	identity, err := authorization.CurrentIdentity(c)
	if err != nil {
		return nil, util.Unauthorized(err.Error())
	}
	if identity.Profile == nil {
		return nil, util.NotFound(util.DOCTOR_PROFILE_NOT_FOUND)
	}

	ids := stringSlice(identity.Profile["appointments"])
	if len(ids) == 0 {
		return identity.Profile, nil
	}

	appointments, err := db.FindAll(c, db.OpenCollections(util.AppointmentCollection), bson.M{"id": bson.M{"$in": ids}}, nil)
	if err != nil {
		log.Println("Error from findAll(appointments): ", err)
		return nil, err
	}

	populated := make(map[string]interface{})
	for k, v := range identity.Profile {
		populated[k] = v
	}
	populated["appointments"] = appointments
	return populated, nil
}

/*
* Listing for booking screens, the heavy fields stay home
* Zero matches answers a not found with a hint, never an empty 200
 */
func FetchDoctorsByClinic(c *gin.Context, clinicId string) ([]map[string]interface{}, error) {
	opts := options.Find().SetProjection(bson.M{
		"_id":          0,
		"appointments": 0,
		"createdBy":    0,
		"updatedBy":    0,
	})

	collection := db.OpenCollections(util.DoctorCollection)
	doctors, err := db.FindAll(c, collection, bson.M{"clinicId": clinicId}, opts)
	if err != nil {
		log.Println("Error from findAll: ", err)
		return nil, err
	}
	if len(doctors) == 0 {
		return nil, util.NotFoundWithSuggestion(util.NO_DOCTORS_IN_CLINIC, util.TRY_ANOTHER_CLINIC)
	}
	return doctors, nil
}
