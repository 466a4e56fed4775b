// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User model. The OTP slot is single-use: issuing a new code overwrites the
// previous one, and a successful verification clears it.
type User struct {
	ID                  primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name                string             `json:"name" bson:"name"`
	Email               string             `json:"email" bson:"email"`
	Password            string             `json:"password,omitempty" bson:"password"`
	ResetToken          string             `json:"-" bson:"resetToken,omitempty"`
	ResetTokenExpiresAt *time.Time         `json:"-" bson:"resetTokenExpiresAt,omitempty"`
	OTPInfo             *OTPInfo           `json:"-" bson:"otpInfo,omitempty"`
	GoogleID            string             `json:"googleId,omitempty" bson:"googleId,omitempty"`
	AppleUserID         string             `json:"appleUserID,omitempty" bson:"appleUserID,omitempty"`
	ProfilePic          string             `json:"profilePic,omitempty" bson:"profilePic,omitempty"`
	OnboardingDone      bool               `json:"onboardingDone" bson:"onboardingDone"`
	CreatedAt           time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type OTPInfo struct {
	Code      string    `json:"code" bson:"code"`
	ExpiresAt time.Time `json:"expiresAt" bson:"expiresAt"`
}

// Response model
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
