package services

import (
	"errors"
	"log"
	"time"

	"MediLink/config/authorization"
	"MediLink/config/db"
	redis "MediLink/config/redis"
	"MediLink/models"
	"MediLink/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const appointmentDateLayout = "2006-01-02"

/*
* Patients book against an existing doctor profile
* The new id is appended to both profiles so self reads can populate
* Both cached profiles are dropped, they hold the old id list
 */
func CreateAppointment(c *gin.Context, data map[string]interface{}) (*models.Appointment, error) {
	identity, err := authorization.CurrentIdentity(c)
	if err != nil {
		return nil, util.Unauthorized(err.Error())
	}

	for _, field := range []string{"doctorId", "date", "timeSlot", "reason"} {
		if err := util.GetTrimmedString(data, field); err != nil {
			return nil, util.FieldError(field, err.Error())
		}
	}
	date, err := time.Parse(appointmentDateLayout, data["date"].(string))
	if err != nil {
		return nil, util.FieldError("date", "date must look like 2026-01-31")
	}

	doctorId := data["doctorId"].(string)
	doctors := db.OpenCollections(util.DoctorCollection)
	doctor := make(map[string]interface{})
	if err := db.FindOne(c, doctors, bson.M{"id": doctorId}, &doctor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.NotFound(util.DOCTOR_NOT_FOUND)
		}
		log.Println("Error from findOne(doctor): ", err)
		return nil, err
	}

	now := time.Now()
	appointment := models.Appointment{
		ID:        uuid.NewString(),
		DoctorID:  doctorId,
		PatientID: identity.ProfileID,
		Date:      date,
		TimeSlot:  data["timeSlot"].(string),
		Reason:    data["reason"].(string),
		Status:    models.AppointmentBooked,
		CreatedAt: now,
		CreatedBy: identity.UserID,
		UpdatedAt: now,
		UpdatedBy: identity.UserID,
	}
	if err := models.Validate.Struct(appointment); err != nil {
		return nil, util.NewValidationError(util.FormatValidationErrors(err))
	}

	appointments := db.OpenCollections(util.AppointmentCollection)
	if _, err := db.CreateOne(c, appointments, appointment); err != nil {
		log.Println("Error from createOne: ", err)
		return nil, err
	}

	push := bson.M{"$push": bson.M{"appointments": appointment.ID}}
	if _, err := db.UpdateOne(c, doctors, bson.M{"id": doctorId}, push); err != nil {
		log.Println("Error while appending to doctor appointments: ", err)
		return nil, err
	}
	patients := db.OpenCollections(util.PatientCollection)
	if _, err := db.UpdateOne(c, patients, bson.M{"id": identity.ProfileID}, push); err != nil {
		log.Println("Error while appending to patient appointments: ", err)
		return nil, err
	}

	if doctorUserId, ok := doctor["userId"].(string); ok {
		if err := redis.DeleteCache(c, models.CacheKey(models.RoleDoctor, doctorUserId)); err != nil {
			log.Println("Error from deleteCache: ", err)
		}
	}
	if err := redis.DeleteCache(c, models.CacheKey(identity.Role, identity.UserID)); err != nil {
		log.Println("Error from deleteCache: ", err)
	}
	return &appointment, nil
}

/*
* Role decides the filter, doctors see their slate, patients their own,
* admins everything
* Newest first
 */
func FetchAppointments(c *gin.Context) ([]map[string]interface{}, error) {
	identity, err := authorization.CurrentIdentity(c)
	if err != nil {
		return nil, util.Unauthorized(err.Error())
	}

	filter := bson.M{}
	switch identity.Role {
	case models.RoleDoctor:
		filter = bson.M{"doctorId": identity.ProfileID}
	case models.RolePatient:
		filter = bson.M{"patientId": identity.ProfileID}
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	results, err := db.FindAll(c, db.OpenCollections(util.AppointmentCollection), filter, opts)
	if err != nil {
		log.Println("Error from findAll: ", err)
		return nil, err
	}
	return results, nil
}

/*
* Doctors and patients only ever see their own records
* An unowned id answers the same not found as a missing one
 */
func FetchAppointmentByID(c *gin.Context, appointmentId string) (map[string]interface{}, error) {
	identity, err := authorization.CurrentIdentity(c)
	if err != nil {
		return nil, util.Unauthorized(err.Error())
	}

	filter := bson.M{"id": appointmentId}
	switch identity.Role {
	case models.RoleDoctor:
		filter["doctorId"] = identity.ProfileID
	case models.RolePatient:
		filter["patientId"] = identity.ProfileID
	}

	appointment := make(map[string]interface{})
	if err := db.FindOne(c, db.OpenCollections(util.AppointmentCollection), filter, &appointment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.NotFound(util.APPOINTMENT_NOT_FOUND)
		}
		log.Println("Error from findOne: ", err)
		return nil, err
	}
	return appointment, nil
}

/*
* Only the owning patient cancels and only while still booked
 */
func CancelAppointment(c *gin.Context, appointmentId string) (map[string]interface{}, error) {
	identity, err := authorization.CurrentIdentity(c)
	if err != nil {
		return nil, util.Unauthorized(err.Error())
	}

	collection := db.OpenCollections(util.AppointmentCollection)
	filter := bson.M{"id": appointmentId, "patientId": identity.ProfileID}
	appointment := make(map[string]interface{})
	if err := db.FindOne(c, collection, filter, &appointment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.NotFound(util.APPOINTMENT_NOT_FOUND)
		}
		log.Println("Error from findOne: ", err)
		return nil, err
	}
	if status, _ := appointment["status"].(string); status != models.AppointmentBooked {
		return nil, util.BadRequest(util.APPOINTMENT_NOT_CANCELLABLE)
	}

	update := bson.M{"$set": bson.M{
		"status":    models.AppointmentCancelled,
		"updatedAt": time.Now(),
		"updatedBy": identity.UserID,
	}}
	if _, err := db.UpdateOne(c, collection, filter, update); err != nil {
		log.Println("Error from updateOne: ", err)
		return nil, err
	}

	updated := make(map[string]interface{})
	if err := db.FindOne(c, collection, filter, &updated); err != nil {
		log.Println("Error from findOne after update: ", err)
		return nil, err
	}
	return updated, nil
}
