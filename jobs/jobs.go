package jobs

import (
	"context"
	"log"
	"time"

	"MediLink/config/db"
	"MediLink/models"
	"MediLink/util"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
)

func StartDailyScheduler() {
	c := cron.New()

	// Runs every day at 00:20 AM
	c.AddFunc("20 0 * * *", func() {
		log.Println("Running daily appointment expiry sweep...")
		ExpirePastAppointments()
	})

	c.Start()
}

// ExpiryFilter matches booked appointments dated before the given start
// of day.
func ExpiryFilter(startOfDay time.Time) bson.M {
	return bson.M{
		"status": models.AppointmentBooked,
		"date":   bson.M{"$lt": startOfDay},
	}
}

// StartOfToday is the current day's UTC midnight. Appointment dates are
// stored as UTC midnights, so the sweep boundary has to live in the same
// zone or the $lt comparison clips the current day on non-UTC servers.
func StartOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

/*
* Booked appointments whose day has passed flip to expired so they stop
* counting as upcoming and can no longer be cancelled
 */
func ExpirePastAppointments() {
	filter := ExpiryFilter(StartOfToday())
	update := bson.M{"$set": bson.M{
		"status":    models.AppointmentExpired,
		"updatedAt": time.Now(),
		"updatedBy": "scheduler",
	}}

	coll := db.OpenCollections(util.AppointmentCollection)
	res, err := db.UpdateMany(context.Background(), coll, filter, update)
	if err != nil {
		log.Println("Error from the expiry sweep:", err)
		return
	}
	log.Println("Expired appointments:", res.ModifiedCount)
}
