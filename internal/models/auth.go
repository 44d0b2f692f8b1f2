package models

import "github.com/golang-jwt/jwt/v5"

// UserRole mirrors the roles issued by the upstream auth service.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleStudent UserRole = "STUDENT"
)

// JWTClaims are the claims the gateway expects inside upstream-issued access
// tokens. The raw token is forwarded upstream unchanged on every call.
type JWTClaims struct {
	UserID    string   `json:"user_id"`
	StudentID string   `json:"studentId,omitempty"`
	Role      UserRole `json:"role"`
	Email     string   `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// SubjectID returns the best student identifier the token carries.
func (c *JWTClaims) SubjectID() string {
	if c == nil {
		return ""
	}
	if c.StudentID != "" {
		return c.StudentID
	}
	if c.UserID != "" {
		return c.UserID
	}
	return c.RegisteredClaims.Subject
}

// StudentProfile is the profile record proxied from the upstream service.
type StudentProfile struct {
	ID           string `json:"id"`
	FullName     string `json:"full_name"`
	MatricNumber string `json:"matric_number"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Gender       string `json:"gender,omitempty"`
	Level        string `json:"level,omitempty"`
	Department   string `json:"department,omitempty"`
}

// RegistrationOverview is one row of the admin registrations listing.
type RegistrationOverview struct {
	StudentID    string             `json:"student_id"`
	StudentName  string             `json:"student_name"`
	MatricNumber string             `json:"matric_number"`
	Status       RegistrationStatus `json:"status"`
	Verification VerificationState  `json:"verification"`
	RoomID       string             `json:"room_id,omitempty"`
}
