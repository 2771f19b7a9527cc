package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"MediLink/config"

	"github.com/google/uuid"
)

// Uploader stores a submitted document and returns its public URL.
type Uploader interface {
	Upload(file *multipart.FileHeader) (string, error)
}

// HTTPUploader forwards files to the external upload service.
type HTTPUploader struct {
	Endpoint string
	Client   *http.Client
}

/*
* Rebuild the multipart body from the incoming file header
* Post it to the upload service
* The service answers {"url": "..."} on success
 */
func (u *HTTPUploader) Upload(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		log.Println("Error from file.Open: ", err)
		return "", err
	}
	defer src.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", file.Filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, src); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, u.Endpoint, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.Client.Do(req)
	if err != nil {
		log.Println("Error from upload service: ", err)
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("upload service responded with status %d", resp.StatusCode)
	}

	payload := struct {
		URL string `json:"url"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.URL == "" {
		return "", errors.New("upload service response missing url")
	}
	return payload.URL, nil
}

// LocalUploader keeps files on disk when no upload service is configured.
type LocalUploader struct {
	Dir string
}

func (u *LocalUploader) Upload(file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(u.Dir, 0o755); err != nil {
		return "", err
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst, err := os.Create(filepath.Join(u.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// DefaultUploader picks the HTTP uploader when UPLOAD_SERVICE_URL is set
// and falls back to local disk otherwise.
func DefaultUploader() Uploader {
	if endpoint := config.UploadServiceURL(); endpoint != "" {
		return &HTTPUploader{
			Endpoint: endpoint,
			Client:   &http.Client{Timeout: 30 * time.Second},
		}
	}
	return &LocalUploader{Dir: config.UploadDir()}
}
