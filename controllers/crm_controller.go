package controllers

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lykr/lykr_backend/models"
	"github.com/lykr/lykr_backend/repositories"
	"github.com/lykr/lykr_backend/utils"
)

// CRMController serves the post-onboarding campaign, lead and ICP endpoints.
type CRMController struct {
	crm    *repositories.CRMRepository
	logger *log.Logger
}

func NewCRMController(crm *repositories.CRMRepository) *CRMController {
	return &CRMController{
		crm:    crm,
		logger: log.New(os.Stdout, "[CRM] ", log.LstdFlags),
	}
}

// ListCampaigns returns the account's campaigns, newest first
func (cc *CRMController) ListCampaigns(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return unauthorized(c)
	}

	campaigns, err := cc.crm.ListCampaigns(c.Request().Context(), userID)
	if err != nil {
		cc.logger.Printf("listing campaigns failed for user %s: %v", userID.Hex(), err)
		return serverFailure(c, "Failed to list campaigns")
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "OK",
		Data:    campaigns,
	})
}

type createCampaignRequest struct {
	CampaignName     string `json:"campaignName" validate:"required,min=2,max=200"`
	LinkedInEmail    string `json:"linkedinEmail" validate:"omitempty,email"`
	LinkedInPassword string `json:"linkedinPassword"`
}

// CreateCampaign creates a draft campaign
func (cc *CRMController) CreateCampaign(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return unauthorized(c)
	}

	var req createCampaignRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "Campaign name is required")
	}

	campaign, err := cc.crm.CreateCampaign(c.Request().Context(), &models.Campaign{
		UserID:           userID,
		CampaignName:     utils.SanitizeInput(req.CampaignName),
		LinkedInEmail:    req.LinkedInEmail,
		LinkedInPassword: req.LinkedInPassword,
	})
	if err != nil {
		cc.logger.Printf("creating campaign failed for user %s: %v", userID.Hex(), err)
		return serverFailure(c, "Failed to create campaign")
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Campaign created",
		Data:    campaign,
	})
}

// ListLeads returns the account's leads, optionally filtered by campaign
func (cc *CRMController) ListLeads(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return unauthorized(c)
	}

	var campaignID *primitive.ObjectID
	if raw := c.QueryParam("campaignId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return badRequest(c, "Invalid campaign ID")
		}
		campaignID = &id
	}

	leads, err := cc.crm.ListLeads(c.Request().Context(), userID, campaignID)
	if err != nil {
		cc.logger.Printf("listing leads failed for user %s: %v", userID.Hex(), err)
		return serverFailure(c, "Failed to list leads")
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "OK",
		Data:    leads,
	})
}

type createLeadRequest struct {
	FullName    string `json:"fullName" validate:"required,min=2,max=200"`
	Title       string `json:"title"`
	Email       string `json:"email" validate:"omitempty,email"`
	LinkedInURL string `json:"linkedinUrl"`
	Phone       string `json:"phone"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Source      string `json:"source"`
	CompanyID   string `json:"companyId"`
}

// CreateLead records a manually added lead
func (cc *CRMController) CreateLead(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return unauthorized(c)
	}

	var req createLeadRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "Lead name is required")
	}

	lead := &models.Lead{
		UserID:      userID,
		FullName:    utils.SanitizeInput(req.FullName),
		Title:       utils.SanitizeInput(req.Title),
		Email:       req.Email,
		LinkedInURL: req.LinkedInURL,
		Phone:       req.Phone,
		Country:     req.Country,
		City:        req.City,
		Source:      req.Source,
	}
	if req.CompanyID != "" {
		companyID, err := primitive.ObjectIDFromHex(req.CompanyID)
		if err != nil {
			return badRequest(c, "Invalid company ID")
		}
		lead.CompanyID = companyID
	}

	created, err := cc.crm.CreateLead(c.Request().Context(), lead)
	if err != nil {
		cc.logger.Printf("creating lead failed for user %s: %v", userID.Hex(), err)
		return serverFailure(c, "Failed to create lead")
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Lead created",
		Data:    created,
	})
}

// GetICP returns the account's ideal customer profile
func (cc *CRMController) GetICP(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return unauthorized(c)
	}

	icp, err := cc.crm.FindICP(c.Request().Context(), userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "No ICP generated yet",
			})
		}
		cc.logger.Printf("fetching ICP failed for user %s: %v", userID.Hex(), err)
		return serverFailure(c, "Failed to fetch ICP")
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "OK",
		Data:    icp,
	})
}

// GetCompany returns the company profile created at onboarding completion
func (cc *CRMController) GetCompany(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return unauthorized(c)
	}

	company, err := cc.crm.FindCompanyByUser(c.Request().Context(), userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "No company profile yet",
			})
		}
		cc.logger.Printf("fetching company failed for user %s: %v", userID.Hex(), err)
		return serverFailure(c, "Failed to fetch company")
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "OK",
		Data:    company,
	})
}

// ListInterviewRecords returns the materialized voice-interview answers
func (cc *CRMController) ListInterviewRecords(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return unauthorized(c)
	}

	records, err := cc.crm.ListInterviewRecords(c.Request().Context(), userID)
	if err != nil {
		cc.logger.Printf("listing interview records failed for user %s: %v", userID.Hex(), err)
		return serverFailure(c, "Failed to list interview records")
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "OK",
		Data:    records,
	})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, models.Response{
		Status:  http.StatusUnauthorized,
		Message: "Authentication required",
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, models.Response{
		Status:  http.StatusBadRequest,
		Message: message,
	})
}

func serverFailure(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, models.Response{
		Status:  http.StatusInternalServerError,
		Message: message,
	})
}
