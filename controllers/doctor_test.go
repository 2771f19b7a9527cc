package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payloadContext(t *testing.T, contentType string, body *bytes.Buffer) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if body == nil {
		body = &bytes.Buffer{}
	}
	c.Request = httptest.NewRequest(http.MethodPut, "/doctor/profile/update", body)
	if contentType != "" {
		c.Request.Header.Set("Content-Type", contentType)
	}
	return c
}

func TestBindProfilePayloadJSON(t *testing.T) {
	body := bytes.NewBufferString(`{"specialization": "cardiology", "experienceYears": "8"}`)
	c := payloadContext(t, "application/json", body)

	data, file, err := bindProfilePayload(c)
	require.NoError(t, err)
	assert.Nil(t, file)
	assert.Equal(t, "cardiology", data["specialization"])
	assert.Equal(t, "8", data["experienceYears"])
}

func TestBindProfilePayloadEmptyBody(t *testing.T) {
	c := payloadContext(t, "application/json", nil)

	data, file, err := bindProfilePayload(c)
	require.NoError(t, err)
	assert.Nil(t, file)
	assert.Empty(t, data)
}

func TestBindProfilePayloadMalformedJSON(t *testing.T) {
	c := payloadContext(t, "application/json", bytes.NewBufferString(`{"specialization":`))

	_, _, err := bindProfilePayload(c)
	assert.Error(t, err)
}

func TestBindProfilePayloadMultipart(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("specialization", "dermatology"))
	require.NoError(t, writer.WriteField("consultationFee", "450"))
	part, err := writer.CreateFormFile("document", "license.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("pdf-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	c := payloadContext(t, writer.FormDataContentType(), body)

	data, file, err := bindProfilePayload(c)
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.Equal(t, "license.pdf", file.Filename)
	assert.Equal(t, "dermatology", data["specialization"])
	assert.Equal(t, "450", data["consultationFee"])
}
