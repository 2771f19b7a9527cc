package controllers

import (
	"net/http"

	"MediLink/config/authorization"
	"MediLink/models"
	"MediLink/services"
	"MediLink/util"

	"github.com/gin-gonic/gin"
)

func Appointment(router *gin.Engine) {
	appointment := router.Group("/appointment")
	{
		appointment.POST("/create", authorization.JWTAuth(), authorization.Authorize(models.RolePatient), CreateAppointment)
		appointment.GET("/fetchAll", authorization.JWTAuth(), authorization.Authorize(models.RoleDoctor, models.RolePatient, models.RoleAdmin), FetchAppointments)
		appointment.GET("/fetch/:appointmentId", authorization.JWTAuth(), authorization.Authorize(models.RoleDoctor, models.RolePatient, models.RoleAdmin), FetchAppointmentByID)
		appointment.PATCH("/cancel/:appointmentId", authorization.JWTAuth(), authorization.Authorize(models.RolePatient), CancelAppointment)
	}
}

func CreateAppointment(c *gin.Context) {
	data := make(map[string]interface{})
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	appointment, err := services.CreateAppointment(c, data)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(appointment))
}

func FetchAppointments(c *gin.Context) {
	appointments, err := services.FetchAppointments(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(appointments))
}

func FetchAppointmentByID(c *gin.Context) {
	appointmentId := c.Param("appointmentId")
	appointment, err := services.FetchAppointmentByID(c, appointmentId)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(appointment))
}

func CancelAppointment(c *gin.Context) {
	appointmentId := c.Param("appointmentId")
	appointment, err := services.CancelAppointment(c, appointmentId)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(appointment))
}
