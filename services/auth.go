package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"MediLink/config/authorization"
	"MediLink/config/db"
	jwt "MediLink/config/jwt"
	"MediLink/models"
	"MediLink/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const maxLoginAttempts = 3

/*
* At least 7 chars with one uppercase, one number, one special
 */
func validatePasswordRules(password string) error {
	if len(password) < 7 {
		return errors.New("password must be at least 7 characters long")
	}

	hasUpper := false
	hasNumber := false
	hasSpecial := false
	specialChars := "!@#$%^&*()-_=+[]{}|;:',.<>?/`~"

	for _, ch := range password {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= '0' && ch <= '9':
			hasNumber = true
		case strings.ContainsRune(specialChars, ch):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return errors.New("password must contain at least one uppercase letter")
	}
	if !hasNumber {
		return errors.New("password must contain at least one number")
	}
	if !hasSpecial {
		return errors.New("password must contain at least one special character")
	}
	return nil
}

/*
* Generate a bcrypt hash for the password given
 */
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(dbPassword string, inputPassword string) error {
	if strings.TrimSpace(dbPassword) == "" {
		return errors.New(util.INVALID_CREDENTIALS)
	}
	return bcrypt.CompareHashAndPassword([]byte(dbPassword), []byte(inputPassword))
}

/*
* Trim the registration fields and validate against the schema
* Enforce the password rules before hashing
* A duplicate email answers a conflict
* Save the user and return a sanitized copy
 */
func Register(c *gin.Context, data map[string]interface{}) (map[string]interface{}, error) {
	for _, field := range []string{"name", "email", "phoneNo", "role"} {
		if err := util.TrimIfExists(data, field); err != nil {
			return nil, util.FieldError(field, err.Error())
		}
	}
	if err := util.GetTrimmedString(data, "password"); err != nil {
		return nil, util.FieldError("password", err.Error())
	}

	user := models.User{}
	if err := models.DecodeInto(data, &user); err != nil {
		log.Println("Error from decodeInto: ", err)
		return nil, err
	}
	if err := models.Validate.Struct(user); err != nil {
		return nil, util.NewValidationError(util.FormatValidationErrors(err))
	}
	if err := validatePasswordRules(user.Password); err != nil {
		return nil, util.FieldError("password", err.Error())
	}

	users := db.OpenCollections(util.UserCollection)
	count, err := db.CountDocuments(c, users, bson.M{"email": user.Email})
	if err != nil {
		log.Println("Error from countDocuments: ", err)
		return nil, err
	}
	if count > 0 {
		return nil, util.Conflict(util.EMAIL_ALREADY_REGISTERED)
	}

	hashed, err := HashPassword(user.Password)
	if err != nil {
		log.Println("Error from hashPassword: ", err)
		return nil, err
	}

	now := time.Now()
	user.ID = uuid.NewString()
	user.Password = hashed
	user.IsActive = true
	user.IsBlocked = false
	user.LoginAttempts = 0
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := db.CreateOne(c, users, user); err != nil {
		log.Println("Error from createOne: ", err)
		return nil, err
	}

	// Admins carry a one-field profile, created alongside the account
	// since no separate endpoint exists for it.
	if user.Role == models.RoleAdmin {
		designation, _ := data["designation"].(string)
		if strings.TrimSpace(designation) == "" {
			designation = "administrator"
		}
		admin := models.Admin{
			ID:          uuid.NewString(),
			UserID:      user.ID,
			Designation: strings.TrimSpace(designation),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if _, err := db.CreateOne(c, db.OpenCollections(util.AdminCollection), admin); err != nil {
			log.Println("Error from createOne(admin profile): ", err)
			return nil, err
		}
	}

	return map[string]interface{}{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}, nil
}

/*
* Login accepts email or phoneNo plus the password
 */
func validateLoginInput(data map[string]interface{}) error {
	_, emailExists := data["email"]
	_, phoneExists := data["phoneNo"]

	if !emailExists && !phoneExists {
		return errors.New(util.EMAIL_NOT_PROVIDED)
	}
	if err := util.GetTrimmedString(data, "password"); err != nil {
		return errors.New(util.PASSWORD_NOT_PROVIDED)
	}
	if emailExists {
		if err := util.GetTrimmedString(data, "email"); err != nil {
			return errors.New(util.EMAIL_NOT_PROVIDED)
		}
	}
	if phoneExists {
		if err := util.GetTrimmedString(data, "phoneNo"); err != nil {
			return errors.New(util.PHONE_NUMBER_NOT_PROVIDED)
		}
	}
	return nil
}

func buildLoginFilter(data map[string]interface{}) bson.M {
	filter := bson.M{}
	if v, ok := data["email"].(string); ok && v != "" {
		filter["email"] = v
	}
	if v, ok := data["phoneNo"].(string); ok && v != "" {
		filter["phoneNo"] = v
	}
	return filter
}

func loginAttemptCount(raw interface{}) int {
	switch v := raw.(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

/*
* Accounts mid reset carry a hashed OTP as their password
* The OTP is only honored while its expiry is in the future
 */
func validateOTPExpiry(user map[string]interface{}) error {
	raw, ok := user["otpExpiry"]
	if !ok {
		return errors.New(util.OTP_EXPIRED)
	}

	var expiry time.Time
	switch v := raw.(type) {
	case primitive.DateTime:
		expiry = v.Time()
	case time.Time:
		expiry = v
	default:
		return errors.New(util.OTP_EXPIRED)
	}

	if time.Now().After(expiry) {
		return errors.New(util.OTP_EXPIRED)
	}
	return nil
}

/*
* Find the user by email or phoneNo
* A wrong password bumps the attempt counter, three misses block the account
* Accounts mid password reset must still hold a live OTP
* Success clears the counter and answers with a signed token
 */
func Login(c *gin.Context, data map[string]interface{}) (map[string]interface{}, error) {
	if err := validateLoginInput(data); err != nil {
		return nil, util.BadRequest(err.Error())
	}
	filter := buildLoginFilter(data)

	users := db.OpenCollections(util.UserCollection)
	user := make(map[string]interface{})
	if err := db.FindOne(c, users, filter, &user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.Unauthorized(util.INVALID_CREDENTIALS)
		}
		log.Println("Error from findOne: ", err)
		return nil, err
	}

	if blocked, _ := user["isBlocked"].(bool); blocked {
		return nil, util.Forbidden(util.ACCOUNT_BLOCKED)
	}

	userId, _ := user["id"].(string)
	dbPassword, _ := user["password"].(string)
	inputPassword, _ := data["password"].(string)

	if err := verifyPassword(dbPassword, inputPassword); err != nil {
		attempts := loginAttemptCount(user["loginAttempts"]) + 1
		set := bson.M{"loginAttempts": attempts}
		if attempts >= maxLoginAttempts {
			set["isBlocked"] = true
		}
		if _, err := db.UpdateOne(c, users, bson.M{"id": userId}, bson.M{"$set": set}); err != nil {
			log.Println("Error while updating login attempts: ", err)
			return nil, err
		}
		if attempts >= maxLoginAttempts {
			return nil, util.Forbidden(util.ACCOUNT_BLOCKED_ATTEMPTS)
		}
		return nil, util.Unauthorized(util.INVALID_CREDENTIALS)
	}

	if reset, _ := user["reset"].(bool); reset {
		if err := validateOTPExpiry(user); err != nil {
			return nil, util.Unauthorized(err.Error())
		}
	}

	if loginAttemptCount(user["loginAttempts"]) > 0 {
		if _, err := db.UpdateOne(c, users, bson.M{"id": userId}, bson.M{"$set": bson.M{"loginAttempts": 0}}); err != nil {
			log.Println("Error while clearing login attempts: ", err)
		}
	}

	role, _ := user["role"].(string)
	token, err := jwt.GenerateToken(userId, role)
	if err != nil {
		log.Println("Error while generating the token: ", err)
		return nil, err
	}

	return map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":    userId,
			"name":  user["name"],
			"email": user["email"],
			"role":  role,
			"reset": user["reset"],
		},
	}, nil
}

/*
* Find the account by email
* The hashed OTP becomes the password until reset completes
* Mail the OTP, never the hash
 */
func ForgotPassword(c *gin.Context, data map[string]interface{}) (string, error) {
	if err := util.GetTrimmedString(data, "email"); err != nil {
		return "", util.FieldError("email", err.Error())
	}
	email := data["email"].(string)

	users := db.OpenCollections(util.UserCollection)
	user := make(map[string]interface{})
	if err := db.FindOne(c, users, bson.M{"email": email}, &user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", util.NotFound(util.USER_NOT_FOUND)
		}
		log.Println("Error from findOne: ", err)
		return "", err
	}

	otp, err := util.GenerateOTP()
	if err != nil {
		log.Println("Error from generateOTP: ", err)
		return "", err
	}
	hashedOTP, err := HashPassword(otp)
	if err != nil {
		log.Println("Error from hashPassword: ", err)
		return "", err
	}

	update := bson.M{"$set": bson.M{
		"password":  hashedOTP,
		"reset":     true,
		"otpExpiry": time.Now().Add(10 * time.Minute),
		"updatedAt": time.Now(),
	}}
	if _, err := db.UpdateOne(c, users, bson.M{"email": email}, update); err != nil {
		log.Println("Error while storing the OTP: ", err)
		return "", err
	}

	name, _ := user["name"].(string)
	subject := "Your MediLink password reset OTP"
	body := fmt.Sprintf("Hello %s,\n\nYour one-time password is: %s\nIt expires in 10 minutes. Log in with it and set a new password.\n\nThank you!", name, otp)
	if err := SendMail(email, subject, body); err != nil {
		log.Println("OTP email failed: ", err)
		return "", errors.New(util.FAILED_TO_SEND_OTP)
	}
	return "reset mail sent successfully", nil
}

func validatePasswordInput(data map[string]interface{}) (string, error) {
	if err := util.GetTrimmedString(data, "newPassword"); err != nil {
		return "", util.FieldError("newPassword", err.Error())
	}
	if err := util.GetTrimmedString(data, "confirmPassword"); err != nil {
		return "", util.FieldError("confirmPassword", err.Error())
	}
	newPassword := data["newPassword"].(string)
	if newPassword != data["confirmPassword"].(string) {
		return "", util.BadRequest(util.PASSWORDS_DO_NOT_MATCH)
	}
	return newPassword, nil
}

/*
* The caller logged in with the OTP so the token identifies them
* Both password fields must match and pass the rules
* Clears the reset flag and the OTP expiry on success
 */
func ResetPassword(c *gin.Context, data map[string]interface{}) (string, error) {
	identity, err := authorization.CurrentIdentity(c)
	if err != nil {
		return "", util.Unauthorized(err.Error())
	}

	newPassword, err := validatePasswordInput(data)
	if err != nil {
		return "", err
	}
	if err := validatePasswordRules(newPassword); err != nil {
		return "", util.FieldError("newPassword", err.Error())
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		log.Println("Error from hashPassword: ", err)
		return "", err
	}

	users := db.OpenCollections(util.UserCollection)
	update := bson.M{
		"$set": bson.M{
			"password":      hashed,
			"reset":         false,
			"loginAttempts": 0,
			"updatedAt":     time.Now(),
		},
		"$unset": bson.M{"otpExpiry": ""},
	}
	if _, err := db.UpdateOne(c, users, bson.M{"id": identity.UserID}, update); err != nil {
		log.Println("Error while updating the password: ", err)
		return "", err
	}
	return "password reset successful", nil
}
