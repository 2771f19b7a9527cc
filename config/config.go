package config

import (
	"os"
	"strconv"
)

// Getenv returns the variable or the fallback when unset.
func Getenv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// IsDevelopment gates whether internal error text is echoed to clients.
func IsDevelopment() bool {
	return Getenv("APP_ENV", "development") == "development"
}

func MongoURI() string {
	return Getenv("MONGODB_URI", "mongodb://localhost:27017")
}

func MongoDatabase() string {
	return Getenv("MONGODB_DATABASE", "medilink")
}

func RedisAddr() string {
	return Getenv("REDIS_ADDR", "localhost:6379")
}

func RedisPassword() string {
	return Getenv("REDIS_PASSWORD", "")
}

func JWTSecret() string {
	return Getenv("JWT_SECRET", "medilink-dev-secret")
}

func ServerPort() string {
	return Getenv("PORT", "8080")
}

func UploadServiceURL() string {
	return Getenv("UPLOAD_SERVICE_URL", "")
}

func UploadDir() string {
	return Getenv("UPLOAD_DIR", "uploads")
}

func RunMigrations() bool {
	return Getenv("RUN_MIGRATIONS", "false") == "true"
}

func SMTPHost() string {
	return Getenv("SMTP_HOST", "smtp.gmail.com")
}

func SMTPPort() int {
	port, err := strconv.Atoi(Getenv("SMTP_PORT", "587"))
	if err != nil {
		return 587
	}
	return port
}

func SMTPUser() string {
	return Getenv("SMTP_USER", "")
}

func SMTPPassword() string {
	return Getenv("SMTP_PASSWORD", "")
}

func MailFrom() string {
	return Getenv("MAIL_FROM", SMTPUser())
}
