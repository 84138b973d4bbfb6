package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceCategories is the closed set of catalog categories.
var ServiceCategories = []string{
	"driving-licence",
	"registration-certificate",
	"passport",
	"marriage-certificate",
	"legal-heir-certificate",
	"rti",
	"gst-registration",
	"vehicle-challan",
	"birth-certificate",
	"insurance",
	"visa",
}

// ValidServiceCategory reports whether category is a known catalog category.
func ValidServiceCategory(category string) bool {
	for _, c := range ServiceCategories {
		if c == category {
			return true
		}
	}
	return false
}

// ServiceStep is one step of a service's application process.
type ServiceStep struct {
	StepNumber  int    `json:"stepNumber" bson:"stepNumber"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
}

// ServiceFAQ is one question/answer pair shown on a service page.
type ServiceFAQ struct {
	Question string `json:"question" bson:"question"`
	Answer   string `json:"answer" bson:"answer"`
}

// Service is one catalog item: a government-paperwork task, its fees and
// processing time. Read-mostly reference data; bookings snapshot the
// fields they need at creation time.
type Service struct {
	ID                  primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Category            string             `json:"category" bson:"category"`
	ServiceID           string             `json:"serviceId" bson:"serviceId"`
	Name                string             `json:"name" bson:"name"`
	Description         string             `json:"description" bson:"description"`
	DetailedDescription string             `json:"detailedDescription,omitempty" bson:"detailedDescription,omitempty"`
	Fee                 float64            `json:"fee" bson:"fee"`
	GovernmentFee       float64            `json:"governmentFee" bson:"governmentFee"`
	ServiceFee          float64            `json:"serviceFee" bson:"serviceFee"`
	ProcessingTime      string             `json:"processingTime" bson:"processingTime"`
	Requirements        []string           `json:"requirements,omitempty" bson:"requirements,omitempty"`
	DocumentsRequired   []string           `json:"documentsRequired,omitempty" bson:"documentsRequired,omitempty"`
	Steps               []ServiceStep      `json:"steps,omitempty" bson:"steps,omitempty"`
	FAQs                []ServiceFAQ       `json:"faqs,omitempty" bson:"faqs,omitempty"`
	IsActive            bool               `json:"isActive" bson:"isActive"`
	CreatedAt           time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// TotalFee is the display total of the fee breakdown fields. Bookings
// bill the headline Fee, not this sum.
func (s *Service) TotalFee() float64 {
	return s.Fee + s.GovernmentFee + s.ServiceFee
}
