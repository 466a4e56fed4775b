// models/crm.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Campaign statuses
const (
	CampaignDraft     = "draft"
	CampaignActive    = "active"
	CampaignPaused    = "paused"
	CampaignCompleted = "completed"
)

// Lead sources
const (
	LeadSourceApollo   = "apollo"
	LeadSourceLinkedIn = "linkedin"
	LeadSourceManual   = "manual"
)

type Company struct {
	ID              primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	UserID          primitive.ObjectID     `json:"userId" bson:"userId"`
	Name            string                 `json:"name" bson:"name"`
	Domain          string                 `json:"domain" bson:"domain"`
	Industry        string                 `json:"industry,omitempty" bson:"industry,omitempty"`
	Size            string                 `json:"size,omitempty" bson:"size,omitempty"`
	LinkedInURL     string                 `json:"linkedinUrl,omitempty" bson:"linkedinUrl,omitempty"`
	WebsiteURL      string                 `json:"websiteUrl,omitempty" bson:"websiteUrl,omitempty"`
	Facebook        string                 `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Twitter         string                 `json:"twitter,omitempty" bson:"twitter,omitempty"`
	YouTube         string                 `json:"youtube,omitempty" bson:"youtube,omitempty"`
	Competitors     []string               `json:"competitors,omitempty" bson:"competitors,omitempty"`
	Country         string                 `json:"country,omitempty" bson:"country,omitempty"`
	City            string                 `json:"city,omitempty" bson:"city,omitempty"`
	RawData         map[string]interface{} `json:"rawData" bson:"rawData"`
	LastRefreshedAt *time.Time             `json:"lastRefreshedAt,omitempty" bson:"lastRefreshedAt,omitempty"`
	CreatedAt       time.Time              `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt" bson:"updatedAt"`
}

type Lead struct {
	ID              primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	UserID          primitive.ObjectID     `json:"userId" bson:"userId"`
	CompanyID       primitive.ObjectID     `json:"companyId" bson:"companyId"`
	Source          string                 `json:"source" bson:"source"`
	FullName        string                 `json:"fullName" bson:"fullName"`
	Title           string                 `json:"title" bson:"title"`
	Email           string                 `json:"email,omitempty" bson:"email,omitempty"`
	LinkedInURL     string                 `json:"linkedinUrl,omitempty" bson:"linkedinUrl,omitempty"`
	Phone           string                 `json:"phone,omitempty" bson:"phone,omitempty"`
	Country         string                 `json:"country,omitempty" bson:"country,omitempty"`
	City            string                 `json:"city,omitempty" bson:"city,omitempty"`
	RawData         map[string]interface{} `json:"rawData" bson:"rawData"`
	LastRefreshedAt time.Time              `json:"lastRefreshedAt" bson:"lastRefreshedAt"`
	CreatedAt       time.Time              `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt" bson:"updatedAt"`
}

type Campaign struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID           primitive.ObjectID `json:"userId" bson:"userId"`
	CampaignName     string             `json:"campaignName" bson:"campaignName"`
	LinkedInEmail    string             `json:"linkedinEmail" bson:"linkedinEmail"`
	LinkedInPassword string             `json:"-" bson:"linkedinPassword"`
	Status           string             `json:"status" bson:"status"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ICP is the ideal customer profile derived from the onboarding answers.
type ICP struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID          primitive.ObjectID `json:"userId" bson:"userId"`
	CompanyIndustry string             `json:"companyIndustry" bson:"companyIndustry"`
	CompanySize     string             `json:"companySize" bson:"companySize"`
	TargetRole      string             `json:"targetRole" bson:"targetRole"`
	PainPoints      []string           `json:"painPoints" bson:"painPoints"`
	Values          []string           `json:"values" bson:"values"`
	Goals           []string           `json:"goals" bson:"goals"`
	GeneratedAt     time.Time          `json:"generatedAt" bson:"generatedAt"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// InterviewRecord is one confirmed voice-interview answer, materialized when
// the wizard completes.
type InterviewRecord struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID         primitive.ObjectID `json:"userId" bson:"userId"`
	QuestionID     int                `json:"questionId" bson:"questionId"`
	QuestionText   string             `json:"questionText" bson:"questionText"`
	TranscriptText string             `json:"transcriptText" bson:"transcriptText"`
	AudioURL       string             `json:"audioUrl,omitempty" bson:"audioUrl,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}
