package util

import (
	"errors"
	"log"
	"net/http"

	"MediLink/config"

	"github.com/gin-gonic/gin"
)

func SuccessResponse(data interface{}) gin.H {
	return gin.H{
		"status": "success",
		"data":   data,
	}
}

func FailedResponse(err error) gin.H {
	return gin.H{
		"status":  "failed",
		"message": err.Error(),
	}
}

func ValidationResponse(fields map[string]string) gin.H {
	return gin.H{
		"status": "failed",
		"errors": fields,
	}
}

/*
* Map a service error onto the right status code and envelope
* Validation errors become a per-field errors map with 400
* APIErrors carry their own status (401/403/404/409...)
* Anything else is unexpected: log it and redact outside development
 */
func RespondError(c *gin.Context, err error) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, ValidationResponse(vErr.Fields))
		return
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		body := FailedResponse(apiErr)
		if apiErr.Suggestion != "" {
			body["suggestion"] = apiErr.Suggestion
		}
		c.JSON(apiErr.Status, body)
		return
	}

	log.Println("Unexpected error: ", err)
	if config.IsDevelopment() {
		c.JSON(http.StatusInternalServerError, FailedResponse(err))
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "failed",
		"message": GenericMessage,
	})
}
