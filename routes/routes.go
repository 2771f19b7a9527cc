package routes

import (
	"MediLink/controllers"

	"github.com/gin-gonic/gin"
)

func Routes(r *gin.Engine) {

	//public
	controllers.Auth(r)
	//private, each route carries its auth chain
	controllers.Doctor(r)
	controllers.Patient(r)
	controllers.Appointment(r)
	controllers.Prescription(r)
}
