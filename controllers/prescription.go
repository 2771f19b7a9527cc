package controllers

import (
	"net/http"

	"MediLink/config/authorization"
	"MediLink/models"
	"MediLink/services"
	"MediLink/util"

	"github.com/gin-gonic/gin"
)

func Prescription(router *gin.Engine) {
	prescription := router.Group("/prescription")
	{
		prescription.POST("/create/:appointmentId", authorization.JWTAuth(), authorization.Authorize(models.RoleDoctor), CreatePrescription)
		prescription.GET("/fetchForPatient", authorization.JWTAuth(), authorization.Authorize(models.RolePatient), FetchPrescriptionsForPatient)
		prescription.GET("/fetchForDoctor", authorization.JWTAuth(), authorization.Authorize(models.RoleDoctor), FetchPrescriptionsForDoctor)
		prescription.GET("/fetch/:prescriptionId", authorization.JWTAuth(), authorization.Authorize(models.RoleDoctor, models.RolePatient, models.RoleAdmin), FetchPrescriptionByID)
	}
}

func CreatePrescription(c *gin.Context) {
	appointmentId := c.Param("appointmentId")
	data := make(map[string]interface{})
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	prescription, err := services.CreatePrescription(c, data, appointmentId)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(prescription))
}

func FetchPrescriptionsForPatient(c *gin.Context) {
	prescriptions, err := services.FetchPrescriptionsForPatient(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(prescriptions))
}

func FetchPrescriptionsForDoctor(c *gin.Context) {
	patientId := c.Query("patientId")
	prescriptions, err := services.FetchPrescriptionsForDoctor(c, patientId)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(prescriptions))
}

func FetchPrescriptionByID(c *gin.Context) {
	prescriptionId := c.Param("prescriptionId")
	prescription, err := services.FetchPrescriptionByID(c, prescriptionId)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(prescription))
}
