package util

// Collection names.
const (
	UserCollection         = "users"
	DoctorCollection       = "doctors"
	PatientCollection      = "patients"
	AdminCollection        = "admins"
	AppointmentCollection  = "appointments"
	PrescriptionCollection = "prescriptions"
)

// PrescriptionKey prefixes prescription cache entries. Profile cache keys
// come from the role table in models.
const PrescriptionKey = "PRESCRIPTION:"

// Auth messages.
const (
	MISSING_AUTH_HEADER       = "missing the authorization header"
	INVALID_OR_EXPIRED_TOKEN  = "invalid or expired token"
	USER_NOT_FOUND            = "user not found"
	PROFILE_NOT_FOUND         = "profile not found for this user"
	ACCOUNT_BLOCKED           = "account is blocked, contact the administrator"
	ACCOUNT_INACTIVE          = "account is deactivated, contact the administrator"
	ROLE_NOT_ALLOWED          = "this role does not have access to the resource"
	UNABLE_TO_FETCH_IDENTITY  = "unable to fetch identity from context"
	EMAIL_NOT_PROVIDED        = "email not provided"
	PHONE_NUMBER_NOT_PROVIDED = "phone number not provided"
	PASSWORD_NOT_PROVIDED     = "password not provided"
	INVALID_CREDENTIALS       = "invalid email or password"
	EMAIL_ALREADY_REGISTERED  = "email already registered"
	OTP_EXPIRED               = "OTP expired, please request a new OTP"
	PASSWORDS_DO_NOT_MATCH    = "newPassword and confirmPassword do not match"
	FAILED_TO_SEND_OTP        = "failed to send the OTP mail"
	ACCOUNT_BLOCKED_ATTEMPTS  = "account blocked after too many failed login attempts"
)

// Doctor / patient profile messages.
const (
	DOCTOR_PROFILE_EXISTS     = "doctor profile already exists for this user"
	PATIENT_PROFILE_EXISTS    = "patient profile already exists for this user"
	DOCTOR_PROFILE_NOT_FOUND  = "doctor profile not found"
	PATIENT_PROFILE_NOT_FOUND = "patient profile not found"
	NOTHING_TO_UPDATE         = "no fields or file submitted to update"
	NO_DOCTORS_IN_CLINIC      = "no doctors found for this clinic"
	TRY_ANOTHER_CLINIC        = "verify the clinicId or try a nearby clinic"
)

// Appointment / prescription messages.
const (
	APPOINTMENT_NOT_FOUND          = "appointment not found"
	APPOINTMENT_ALREADY_PRESCRIBED = "a prescription already exists for this appointment"
	APPOINTMENT_NOT_CANCELLABLE    = "only booked appointments can be cancelled"
	PRESCRIPTION_NOT_FOUND         = "prescription not found"
	MEDICINES_MUST_BE_ARRAY        = "medications must be a non-empty list"
	DIAGNOSIS_NOT_PROVIDED         = "diagnosis not provided"
	DOCTOR_NOT_FOUND               = "doctor not found"
)

// GenericMessage is returned on unexpected failures outside development.
const GenericMessage = "something went wrong, please try again later"
