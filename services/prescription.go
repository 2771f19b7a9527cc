package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
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

/*
* Every bad entry is reported keyed by its position, the caller fixes one
* round trip worth of mistakes instead of replaying the request per field
 */
func validateMedicationEntries(items []interface{}) ([]models.Medication, map[string]string) {
	required := []string{"name", "dosage", "frequency", "duration"}
	fields := make(map[string]string)

	for i, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			fields[fmt.Sprintf("medications[%d]", i)] = "must be an object"
			continue
		}
		for _, f := range required {
			if err := util.GetTrimmedString(entry, f); err != nil {
				fields[fmt.Sprintf("medications[%d].%s", i, f)] = err.Error()
			}
		}
	}
	if len(fields) > 0 {
		return nil, fields
	}

	medications := make([]models.Medication, 0, len(items))
	for _, item := range items {
		entry := item.(map[string]interface{})
		med := models.Medication{
			Name:      entry["name"].(string),
			Dosage:    entry["dosage"].(string),
			Frequency: entry["frequency"].(string),
			Duration:  entry["duration"].(string),
		}
		if s, ok := entry["instructions"].(string); ok {
			med.Instructions = strings.TrimSpace(s)
		}
		medications = append(medications, med)
	}
	return medications, nil
}

/*
* The medication list gates everything else, an empty one is a user error
* Ownership rides in the query filter, an unowned appointment reads as
* missing rather than forbidden
* Entry errors and a missing diagnosis come back together in one response
* The prescription insert and the appointment back-fill commit together,
* a second prescription for the same appointment conflicts inside the
* transaction too
 */
func CreatePrescription(c *gin.Context, data map[string]interface{}, appointmentId string) (*models.Prescription, error) {
	identity, err := authorization.CurrentIdentity(c)
	if err != nil {
		return nil, util.Unauthorized(err.Error())
	}

	items, ok := data["medications"].([]interface{})
	if !ok || len(items) == 0 {
		return nil, util.FieldError("medications", util.MEDICINES_MUST_BE_ARRAY)
	}

	appointments := db.OpenCollections(util.AppointmentCollection)
	appointment := make(map[string]interface{})
	filter := bson.M{"id": appointmentId, "doctorId": identity.ProfileID}
	if err := db.FindOne(c, appointments, filter, &appointment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.NotFound(util.APPOINTMENT_NOT_FOUND)
		}
		log.Println("Error from findOne(appointment): ", err)
		return nil, err
	}
	if pid, _ := appointment["prescriptionId"].(string); pid != "" {
		return nil, util.Conflict(util.APPOINTMENT_ALREADY_PRESCRIBED)
	}

	medications, fields := validateMedicationEntries(items)
	if fields == nil {
		fields = make(map[string]string)
	}
	if err := util.GetTrimmedString(data, "diagnosis"); err != nil {
		fields["diagnosis"] = util.DIAGNOSIS_NOT_PROVIDED
	}
	followUp := ""
	if s, ok := data["followUpDate"].(string); ok && strings.TrimSpace(s) != "" {
		followUp = strings.TrimSpace(s)
		if _, err := time.Parse(appointmentDateLayout, followUp); err != nil {
			fields["followUpDate"] = "followUpDate must look like 2026-01-31"
		}
	}
	if len(fields) > 0 {
		return nil, util.NewValidationError(fields)
	}

	tests := stringSlice(data["tests"])
	if tests == nil {
		tests = []string{}
	}
	notes := ""
	if s, ok := data["notes"].(string); ok {
		notes = strings.TrimSpace(s)
	}

	patientId, _ := appointment["patientId"].(string)
	now := time.Now()
	prescription := models.Prescription{
		ID:            uuid.NewString(),
		AppointmentID: appointmentId,
		DoctorID:      identity.ProfileID,
		PatientID:     patientId,
		Diagnosis:     data["diagnosis"].(string),
		Medications:   medications,
		Tests:         tests,
		Notes:         notes,
		FollowUpDate:  followUp,
		CreatedAt:     now,
		CreatedBy:     identity.UserID,
		UpdatedAt:     now,
		UpdatedBy:     identity.UserID,
	}

	prescriptions := db.OpenCollections(util.PrescriptionCollection)
	if _, err := db.WithTransaction(c, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := db.CreateOne(sc, prescriptions, prescription); err != nil {
			return nil, err
		}
		res, err := db.UpdateOne(sc, appointments, bson.M{
			"id":             appointmentId,
			"prescriptionId": bson.M{"$exists": false},
		}, bson.M{"$set": bson.M{
			"prescriptionId": prescription.ID,
			"status":         models.AppointmentCompleted,
			"updatedAt":      now,
			"updatedBy":      identity.UserID,
		}})
		if err != nil {
			return nil, err
		}
		if res.ModifiedCount == 0 {
			return nil, util.Conflict(util.APPOINTMENT_ALREADY_PRESCRIBED)
		}
		return nil, nil
	}); err != nil {
		log.Println("Error from withTransaction: ", err)
		return nil, err
	}

	key := util.PrescriptionKey + prescription.ID
	if err := redis.SetCache(c, key, prescription); err != nil {
		log.Println("Error from setCache: ", err)
	}
	return &prescription, nil
}

func userNames(c *gin.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string)
	if len(ids) == 0 {
		return names, nil
	}
	users, err := db.FindAll(c, db.OpenCollections(util.UserCollection), bson.M{"id": bson.M{"$in": ids}}, nil)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		id, _ := user["id"].(string)
		name, _ := user["name"].(string)
		names[id] = name
	}
	return names, nil
}

/*
* Summaries pull the display name from the user record backing the
* profile, one query per collection rather than one per row
 */
func doctorSummaries(c *gin.Context, ids []string) (map[string]map[string]interface{}, error) {
	out := make(map[string]map[string]interface{})
	if len(ids) == 0 {
		return out, nil
	}
	doctors, err := db.FindAll(c, db.OpenCollections(util.DoctorCollection), bson.M{"id": bson.M{"$in": ids}}, nil)
	if err != nil {
		return nil, err
	}

	userIds := make([]string, 0, len(doctors))
	for _, doctor := range doctors {
		if uid, ok := doctor["userId"].(string); ok {
			userIds = append(userIds, uid)
		}
	}
	names, err := userNames(c, userIds)
	if err != nil {
		return nil, err
	}

	for _, doctor := range doctors {
		id, _ := doctor["id"].(string)
		uid, _ := doctor["userId"].(string)
		out[id] = map[string]interface{}{
			"id":             id,
			"name":           names[uid],
			"specialization": doctor["specialization"],
		}
	}
	return out, nil
}

func patientSummaries(c *gin.Context, ids []string) (map[string]map[string]interface{}, error) {
	out := make(map[string]map[string]interface{})
	if len(ids) == 0 {
		return out, nil
	}
	patients, err := db.FindAll(c, db.OpenCollections(util.PatientCollection), bson.M{"id": bson.M{"$in": ids}}, nil)
	if err != nil {
		return nil, err
	}

	userIds := make([]string, 0, len(patients))
	for _, patient := range patients {
		if uid, ok := patient["userId"].(string); ok {
			userIds = append(userIds, uid)
		}
	}
	names, err := userNames(c, userIds)
	if err != nil {
		return nil, err
	}

	for _, patient := range patients {
		id, _ := patient["id"].(string)
		uid, _ := patient["userId"].(string)
		out[id] = map[string]interface{}{
			"id":     id,
			"name":   names[uid],
			"gender": patient["gender"],
		}
	}
	return out, nil
}

func appointmentSummaries(c *gin.Context, ids []string) (map[string]map[string]interface{}, error) {
	out := make(map[string]map[string]interface{})
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := db.FindAll(c, db.OpenCollections(util.AppointmentCollection), bson.M{"id": bson.M{"$in": ids}}, nil)
	if err != nil {
		return nil, err
	}
	for _, appointment := range rows {
		id, _ := appointment["id"].(string)
		out[id] = map[string]interface{}{
			"id":       id,
			"date":     appointment["date"],
			"timeSlot": appointment["timeSlot"],
			"reason":   appointment["reason"],
		}
	}
	return out, nil
}

func uniqueIds(rows []map[string]interface{}, field string) []string {
	seen := make(map[string]bool)
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if id, ok := row[field].(string); ok && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

/*
* Listing population, the views differ only in which side they attach
 */
func populatePrescriptions(c *gin.Context, rows []map[string]interface{}, withDoctor bool, withPatient bool) ([]map[string]interface{}, error) {
	var doctors, patients map[string]map[string]interface{}
	var err error

	if withDoctor {
		doctors, err = doctorSummaries(c, uniqueIds(rows, "doctorId"))
		if err != nil {
			log.Println("Error from doctorSummaries: ", err)
			return nil, err
		}
	}
	if withPatient {
		patients, err = patientSummaries(c, uniqueIds(rows, "patientId"))
		if err != nil {
			log.Println("Error from patientSummaries: ", err)
			return nil, err
		}
	}
	appointments, err := appointmentSummaries(c, uniqueIds(rows, "appointmentId"))
	if err != nil {
		log.Println("Error from appointmentSummaries: ", err)
		return nil, err
	}

	for _, row := range rows {
		if withDoctor {
			if id, ok := row["doctorId"].(string); ok {
				if summary, exists := doctors[id]; exists {
					row["doctor"] = summary
				}
			}
		}
		if withPatient {
			if id, ok := row["patientId"].(string); ok {
				if summary, exists := patients[id]; exists {
					row["patient"] = summary
				}
			}
		}
		if id, ok := row["appointmentId"].(string); ok {
			if summary, exists := appointments[id]; exists {
				row["appointment"] = summary
			}
		}
	}
	return rows, nil
}

/*
* A patient reads their own prescriptions, newest first, each carrying
* the prescribing doctor and the visit it came from
 */
func FetchPrescriptionsForPatient(c *gin.Context) ([]map[string]interface{}, error) {
	identity, err := authorization.CurrentIdentity(c)
	if err != nil {
		return nil, util.Unauthorized(err.Error())
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	rows, err := db.FindAll(c, db.OpenCollections(util.PrescriptionCollection), bson.M{"patientId": identity.ProfileID}, opts)
	if err != nil {
		log.Println("Error from findAll: ", err)
		return nil, err
	}
	return populatePrescriptions(c, rows, true, false)
}

/*
* A doctor reads what they issued, optionally narrowed to one patient
 */
func FetchPrescriptionsForDoctor(c *gin.Context, patientId string) ([]map[string]interface{}, error) {
	identity, err := authorization.CurrentIdentity(c)
	if err != nil {
		return nil, util.Unauthorized(err.Error())
	}

	filter := bson.M{"doctorId": identity.ProfileID}
	if patientId = strings.TrimSpace(patientId); patientId != "" {
		filter["patientId"] = patientId
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	rows, err := db.FindAll(c, db.OpenCollections(util.PrescriptionCollection), filter, opts)
	if err != nil {
		log.Println("Error from findAll: ", err)
		return nil, err
	}
	return populatePrescriptions(c, rows, false, true)
}

func doctorDetail(c *gin.Context, id string) (map[string]interface{}, error) {
	doctor := make(map[string]interface{})
	if err := db.FindOne(c, db.OpenCollections(util.DoctorCollection), bson.M{"id": id}, &doctor); err != nil {
		return nil, err
	}
	detail := map[string]interface{}{
		"id":             doctor["id"],
		"clinicId":       doctor["clinicId"],
		"specialization": doctor["specialization"],
		"licenseNumber":  doctor["licenseNumber"],
	}
	if uid, ok := doctor["userId"].(string); ok {
		names, err := userNames(c, []string{uid})
		if err != nil {
			return nil, err
		}
		detail["name"] = names[uid]
	}
	return detail, nil
}

func patientDetail(c *gin.Context, id string) (map[string]interface{}, error) {
	patient := make(map[string]interface{})
	if err := db.FindOne(c, db.OpenCollections(util.PatientCollection), bson.M{"id": id}, &patient); err != nil {
		return nil, err
	}
	detail := map[string]interface{}{
		"id":          patient["id"],
		"gender":      patient["gender"],
		"dateOfBirth": patient["dateOfBirth"],
		"bloodGroup":  patient["bloodGroup"],
	}
	if uid, ok := patient["userId"].(string); ok {
		names, err := userNames(c, []string{uid})
		if err != nil {
			return nil, err
		}
		detail["name"] = names[uid]
	}
	return detail, nil
}

/*
* The single record view is the richest one, license number and date of
* birth included, the role allow-list upstream already vetted the caller
* Related records that have since vanished are skipped, not fatal
 */
func FetchPrescriptionByID(c *gin.Context, prescriptionId string) (map[string]interface{}, error) {
	key := util.PrescriptionKey + prescriptionId
	prescription, found, err := redis.GetCache(c, key)
	if err != nil || !found {
		prescription = make(map[string]interface{})
		if err := db.FindOne(c, db.OpenCollections(util.PrescriptionCollection), bson.M{"id": prescriptionId}, &prescription); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, util.NotFound(util.PRESCRIPTION_NOT_FOUND)
			}
			log.Println("Error from findOne: ", err)
			return nil, err
		}
		if err := redis.SetCache(c, key, prescription); err != nil {
			log.Println("Error from setCache: ", err)
		}
	}

	result := make(map[string]interface{})
	for k, v := range prescription {
		result[k] = v
	}

	if id, ok := result["doctorId"].(string); ok {
		doctor, err := doctorDetail(c, id)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			log.Println("Error from doctorDetail: ", err)
			return nil, err
		}
		if doctor != nil {
			result["doctor"] = doctor
		}
	}
	if id, ok := result["patientId"].(string); ok {
		patient, err := patientDetail(c, id)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			log.Println("Error from patientDetail: ", err)
			return nil, err
		}
		if patient != nil {
			result["patient"] = patient
		}
	}
	if id, ok := result["appointmentId"].(string); ok {
		summaries, err := appointmentSummaries(c, []string{id})
		if err != nil {
			log.Println("Error from appointmentSummaries: ", err)
			return nil, err
		}
		if summary, exists := summaries[id]; exists {
			result["appointment"] = summary
		}
	}
	return result, nil
}
