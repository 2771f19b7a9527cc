package main

import (
	"context"
	"log"

	"MediLink/config"
	"MediLink/config/db"
	redis "MediLink/config/redis"
	"MediLink/jobs"
	"MediLink/migrations"
	"MediLink/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	connectDB   = db.Connect
	startEngine = func(r *gin.Engine) error { return r.Run(":" + config.ServerPort()) }
	isTest      = false
)

func main() {
	run()
}

func run() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error in loading the ENV")
	}

	if err := connectDB(); err != nil {
		log.Fatal("Unable to connect to MongoDB: ", err)
	}
	defer db.Disconnect(context.Background())

	if err := db.EnsureIndexes(context.Background()); err != nil {
		log.Println("Error while ensuring indexes: ", err)
	}
	if err := redis.InitRedis(); err != nil {
		log.Println("Running without the redis cache: ", err)
	}

	if config.RunMigrations() {
		migrations.BackfillAppointmentStatus()
		migrations.RenameHospitalIdToClinicId()
	}
	if !isTest {
		jobs.StartDailyScheduler()
	}

	r := buildEngine()
	if err := startEngine(r); err != nil {
		log.Fatal("Server failed: ", err)
	}
}

func buildEngine() *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	routes.Routes(r)
	return r
}
