package migrations

import (
	"context"
	"log"

	"MediLink/config/db"
	"MediLink/models"
	"MediLink/util"

	"go.mongodb.org/mongo-driver/bson"
)

func BackfillAppointmentStatus() {
	ctx := context.Background()
	result, err := db.Database.Collection(util.AppointmentCollection).UpdateMany(
		ctx,
		bson.M{"status": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"status": models.AppointmentBooked}},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}
	log.Printf("Migration applied: %d appointments backfilled\n", result.ModifiedCount)
}
