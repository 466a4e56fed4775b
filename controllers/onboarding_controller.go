package controllers

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/lykr/lykr_backend/models"
	"github.com/lykr/lykr_backend/onboarding"
	"github.com/lykr/lykr_backend/repositories"
	"github.com/lykr/lykr_backend/utils"
)

const sessionCookieName = "lykr_onboarding_session"

// OnboardingController drives the wizard. Every mutation loads the session
// snapshot, applies one pure transform and saves the result back.
type OnboardingController struct {
	store  *onboarding.SnapshotStore
	crm    *repositories.CRMRepository
	users  *repositories.UserRepository
	logger *log.Logger
}

func NewOnboardingController(store *onboarding.SnapshotStore, crm *repositories.CRMRepository, users *repositories.UserRepository) *OnboardingController {
	return &OnboardingController{
		store:  store,
		crm:    crm,
		users:  users,
		logger: log.New(os.Stdout, "[ONBOARDING] ", log.LstdFlags),
	}
}

// sessionID returns the wizard session from the cookie, minting one if the
// visitor has none yet.
func (oc *OnboardingController) sessionID(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	return id
}

func (oc *OnboardingController) load(c echo.Context) (string, models.WizardState) {
	session := oc.sessionID(c)
	state, _ := oc.store.Load(c.Request().Context(), session)
	return session, state
}

func (oc *OnboardingController) save(c echo.Context, session string, state models.WizardState) error {
	if err := oc.store.Save(c.Request().Context(), session, state); err != nil {
		oc.logger.Printf("snapshot save failed for session %s: %v", session, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save onboarding state",
		})
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "OK",
		Data:    state,
	})
}

// GetState returns the hydrated wizard document for this session
func (oc *OnboardingController) GetState(c echo.Context) error {
	_, state := oc.load(c)
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "OK",
		Data:    state,
	})
}

type stepView struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Route    string  `json:"route"`
	Optional bool    `json:"optional"`
	Complete bool    `json:"complete"`
	Progress float64 `json:"progress"`
}

// GetSteps returns the step sequence with per-step completion for this session
func (oc *OnboardingController) GetSteps(c echo.Context) error {
	_, state := oc.load(c)

	steps := make([]stepView, 0, len(onboarding.Steps))
	for _, st := range onboarding.Steps {
		steps = append(steps, stepView{
			Key:      st.Key,
			Label:    st.Label,
			Route:    st.Route,
			Optional: st.Optional,
			Complete: st.Complete(state),
			Progress: onboarding.Progress(st.Key),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "OK",
		Data:    steps,
	})
}

// SetBusinessInfo handles the first wizard step
func (oc *OnboardingController) SetBusinessInfo(c echo.Context) error {
	var info models.BusinessInfo
	if err := c.Bind(&info); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	info.Name = utils.SanitizeInput(info.Name)

	session, state := oc.load(c)
	return oc.save(c, session, onboarding.SetBusinessInfo(state, info))
}

// SetWebsite handles the website and social links step
func (oc *OnboardingController) SetWebsite(c echo.Context) error {
	var info models.WebsiteInfo
	if err := c.Bind(&info); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	session, state := oc.load(c)
	return oc.save(c, session, onboarding.SetWebsiteInfo(state, info))
}

// AddDocument records the metadata of an uploaded document
func (oc *OnboardingController) AddDocument(c echo.Context) error {
	file, err := c.FormFile("document")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Document file is required",
		})
	}

	if err := utils.ValidateDocumentFile(file.Filename, file.Size); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	session, state := oc.load(c)
	doc := models.DocumentInfo{Name: file.Filename, Size: file.Size}
	return oc.save(c, session, onboarding.AddDocument(state, doc))
}

// RemoveDocument drops a document by its index
func (oc *OnboardingController) RemoveDocument(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid document index",
		})
	}

	session, state := oc.load(c)
	return oc.save(c, session, onboarding.RemoveDocument(state, index))
}

type competitorsRequest struct {
	Competitors []string `json:"competitors"`
}

// SetCompetitors replaces the competitor list
func (oc *OnboardingController) SetCompetitors(c echo.Context) error {
	var req competitorsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	session, state := oc.load(c)
	return oc.save(c, session, onboarding.SetCompetitors(state, utils.SanitizeStringArray(req.Competitors)))
}

type voiceInterviewRequest struct {
	Questions []models.VoiceInterviewQuestion `json:"questions"`
}

// SetVoiceInterview replaces the interview question set
func (oc *OnboardingController) SetVoiceInterview(c echo.Context) error {
	var req voiceInterviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	session, state := oc.load(c)
	return oc.save(c, session, onboarding.SetVoiceInterview(state, req.Questions))
}

type transcriptRequest struct {
	QuestionID int    `json:"questionId"`
	Transcript string `json:"transcript"`
}

// ConfirmTranscript stores a confirmed interview answer and advances the
// question sequence
func (oc *OnboardingController) ConfirmTranscript(c echo.Context) error {
	var req transcriptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	session, state := oc.load(c)
	next := onboarding.UpdateQuestionTranscript(state, req.QuestionID, req.Transcript)
	return oc.save(c, session, next)
}

// Reset discards all collected data for this session
func (oc *OnboardingController) Reset(c echo.Context) error {
	session := oc.sessionID(c)
	if err := oc.store.Clear(c.Request().Context(), session); err != nil {
		oc.logger.Printf("snapshot clear failed for session %s: %v", session, err)
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "OK",
		Data:    onboarding.DefaultState(),
	})
}

// Complete materializes the wizard into the account's company profile and
// interview records. Requires an authenticated session.
func (oc *OnboardingController) Complete(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	session, state := oc.load(c)

	// The required steps must be complete before the wizard can finish
	for _, st := range onboarding.Steps {
		if !st.Optional && !st.Complete(state) {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Onboarding is not complete: " + st.Key,
			})
		}
	}

	company, err := oc.crm.CompleteOnboarding(c.Request().Context(), userID, state)
	if err != nil {
		oc.logger.Printf("onboarding completion failed for user %s: %v", userID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to complete onboarding",
		})
	}

	if err := oc.users.MarkOnboardingDone(c.Request().Context(), userID); err != nil {
		oc.logger.Printf("marking onboarding done failed for user %s: %v", userID.Hex(), err)
	}

	if err := oc.store.Clear(c.Request().Context(), session); err != nil {
		oc.logger.Printf("snapshot clear failed for session %s: %v", session, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Onboarding complete",
		Data:    company,
	})
}
