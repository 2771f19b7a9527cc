package controllers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"MediLink/config/authorization"
	"MediLink/models"
	"MediLink/services"
	"MediLink/util"

	"github.com/gin-gonic/gin"
)

func Doctor(router *gin.Engine) {
	doctor := router.Group("/doctor")
	{
		doctor.POST("/profile/create", authorization.Authenticate(), authorization.Authorize(models.RoleDoctor), CreateDoctorProfile)
		doctor.PUT("/profile/update", authorization.JWTAuth(), authorization.Authorize(models.RoleDoctor), UpdateDoctorProfile)
		doctor.GET("/profile/fetch", authorization.JWTAuth(), authorization.Authorize(models.RoleDoctor), FetchDoctorProfile)
		doctor.GET("/fetchByClinic/:clinicId", authorization.JWTAuth(), authorization.Authorize(models.RoleDoctor, models.RolePatient, models.RoleAdmin), FetchDoctorsByClinic)
	}
}

/*
* Profile payloads arrive as JSON or as a multipart form with an optional
* document, both land in the same map
* A missing body reads as an empty update so the service can name the
* real problem
 */
func bindProfilePayload(c *gin.Context) (map[string]interface{}, *multipart.FileHeader, error) {
	data := make(map[string]interface{})

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, nil, err
		}
		for key, values := range form.Value {
			if len(values) == 1 {
				data[key] = values[0]
			} else if len(values) > 1 {
				data[key] = values
			}
		}
		var file *multipart.FileHeader
		if files := form.File["document"]; len(files) > 0 {
			file = files[0]
		}
		return data, file, nil
	}

	if err := c.ShouldBindJSON(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return data, nil, nil
		}
		return nil, nil, err
	}
	return data, nil, nil
}

func CreateDoctorProfile(c *gin.Context) {
	data, file, err := bindProfilePayload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	doctor, err := services.CreateDoctorProfile(c, data, file)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(doctor))
}

func UpdateDoctorProfile(c *gin.Context) {
	data, file, err := bindProfilePayload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	doctor, err := services.UpdateDoctorProfile(c, data, file)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctor))
}

func FetchDoctorProfile(c *gin.Context) {
	doctor, err := services.FetchDoctorProfile(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctor))
}

func FetchDoctorsByClinic(c *gin.Context) {
	clinicId := c.Param("clinicId")
	doctors, err := services.FetchDoctorsByClinic(c, clinicId)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctors))
}
