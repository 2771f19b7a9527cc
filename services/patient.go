package services

import (
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
)

/*
* One patient profile per user, a second create answers a conflict
* Mirrors the doctor create, allergies default to an empty list
 */
func CreatePatientProfile(c *gin.Context, data map[string]interface{}, file *multipart.FileHeader) (*models.Patient, error) {
	identity, err := authorization.CurrentIdentity(c)
	if err != nil {
		return nil, util.Unauthorized(err.Error())
	}

	collection := db.OpenCollections(util.PatientCollection)
	count, err := db.CountDocuments(c, collection, bson.M{"userId": identity.UserID})
	if err != nil {
		log.Println("Error from countDocuments: ", err)
		return nil, err
	}
	if count > 0 {
		return nil, util.Conflict(util.PATIENT_PROFILE_EXISTS)
	}

	stripProtectedFields(data)
	for _, field := range []string{"dateOfBirth", "gender", "bloodGroup", "address"} {
		if err := util.TrimIfExists(data, field); err != nil {
			return nil, util.FieldError(field, err.Error())
		}
	}
	data["userId"] = identity.UserID

	patient := models.Patient{}
	if err := models.DecodeInto(data, &patient); err != nil {
		log.Println("Error from decodeInto: ", err)
		return nil, util.BadRequest(err.Error())
	}
	if err := models.Validate.Struct(patient); err != nil {
		return nil, util.NewValidationError(util.FormatValidationErrors(err))
	}

	if file != nil {
		url, err := DefaultUploader().Upload(file)
		if err != nil {
			log.Println("Error from upload: ", err)
			return nil, err
		}
		patient.AvatarURL = url
	}

	now := time.Now()
	patient.ID = uuid.NewString()
	if patient.Allergies == nil {
		patient.Allergies = []string{}
	}
	patient.Appointments = []string{}
	patient.CreatedAt = now
	patient.CreatedBy = identity.UserID
	patient.UpdatedAt = now
	patient.UpdatedBy = identity.UserID

	if _, err := db.CreateOne(c, collection, patient); err != nil {
		log.Println("Error from createOne: ", err)
		return nil, err
	}

	key := models.CacheKey(identity.Role, identity.UserID)
	if err := redis.SetCache(c, key, patient); err != nil {
		log.Println("Error from setCache: ", err)
	}
	return &patient, nil
}

/*
* Self read with the same conditional population as the doctor profile
 */
func FetchPatientProfile(c *gin.Context) (map[string]interface{}, error) {
	identity, err := authorization.CurrentIdentity(c)
	if err != nil {
		return nil, util.Unauthorized(err.Error())
	}
	if identity.Profile == nil {
		return nil, util.NotFound(util.PATIENT_PROFILE_NOT_FOUND)
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
