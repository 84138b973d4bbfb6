// models/user.go
package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Address model
type Address struct {
	Street  string `json:"street,omitempty" bson:"street,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	Pincode string `json:"pincode,omitempty" bson:"pincode,omitempty"`
}

// User model
type User struct {
	ID            primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	FullName      string               `json:"fullName" bson:"fullName"`
	Email         string               `json:"email" bson:"email"`
	Phone         string               `json:"phone,omitempty" bson:"phone,omitempty"`
	Password      string               `json:"-" bson:"password"`
	Role          string               `json:"role" bson:"role"`
	IsActive      bool                 `json:"isActive" bson:"isActive"`
	Address       Address              `json:"address,omitempty" bson:"address,omitempty"`
	AadhaarNumber string               `json:"aadhaarNumber,omitempty" bson:"aadhaarNumber,omitempty"`
	PANNumber     string               `json:"panNumber,omitempty" bson:"panNumber,omitempty"`
	Bookings      []primitive.ObjectID `json:"bookings,omitempty" bson:"bookings,omitempty"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest is the payload for PUT /api/users/profile.
type UpdateProfileRequest struct {
	FullName      string   `json:"fullName"`
	Phone         string   `json:"phone"`
	Address       *Address `json:"address"`
	AadhaarNumber string   `json:"aadhaarNumber"`
	PANNumber     string   `json:"panNumber"`
}

// ChangePasswordRequest is the payload for POST /api/users/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// AdminUpdateUserRequest is the payload for PUT /api/admin/users/:id.
type AdminUpdateUserRequest struct {
	FullName *string  `json:"fullName"`
	Phone    *string  `json:"phone"`
	Address  *Address `json:"address"`
	Role     *string  `json:"role"`
	IsActive *bool    `json:"isActive"`
}

// Response is the JSON envelope every endpoint returns. The payload's
// fields sit at the top level next to success and message, so a booking
// list serializes as {success, count, bookings} rather than nesting
// under a data key.
type Response struct {
	Success bool
	Message string
	Data    interface{}
}

// MarshalJSON flattens the payload into the envelope object. A payload
// that is not a JSON object (rare) stays under a data key.
func (r Response) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(r.Data)
	if err != nil {
		return nil, err
	}

	out := map[string]interface{}{}
	if r.Data != nil {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err == nil {
			for k, v := range fields {
				out[k] = v
			}
		} else {
			out["data"] = json.RawMessage(raw)
		}
	}

	out["success"] = r.Success
	if r.Message != "" {
		out["message"] = r.Message
	}
	return json.Marshal(out)
}

// OK builds a success envelope.
func OK(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Fail builds an error envelope.
func Fail(message string) Response {
	return Response{Success: false, Message: message}
}
