package migrations

import (
	"context"
	"log"

	"MediLink/config/db"
	"MediLink/util"

	"go.mongodb.org/mongo-driver/bson"
)

func RenameHospitalIdToClinicId() {
	ctx := context.Background()
	result, err := db.Database.Collection(util.DoctorCollection).UpdateMany(
		ctx,
		bson.M{"hospitalId": bson.M{"$exists": true}},
		bson.M{"$rename": bson.M{"hospitalId": "clinicId"}},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}
	log.Printf("Migration applied: %d doctors renamed\n", result.ModifiedCount)
}
