package controllers

import (
	"net/http"

	"MediLink/config/authorization"
	"MediLink/models"
	"MediLink/services"
	"MediLink/util"

	"github.com/gin-gonic/gin"
)

func Patient(router *gin.Engine) {
	patient := router.Group("/patient")
	{
		patient.POST("/profile/create", authorization.Authenticate(), authorization.Authorize(models.RolePatient), CreatePatientProfile)
		patient.GET("/profile/fetch", authorization.JWTAuth(), authorization.Authorize(models.RolePatient), FetchPatientProfile)
	}
}

func CreatePatientProfile(c *gin.Context) {
	data, file, err := bindProfilePayload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	patient, err := services.CreatePatientProfile(c, data, file)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(patient))
}

func FetchPatientProfile(c *gin.Context) {
	patient, err := services.FetchPatientProfile(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(patient))
}
