package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lykr/lykr_backend/models"
)

func TestSeedICP(t *testing.T) {
	userID := primitive.NewObjectID()
	now := time.Now()
	state := models.WizardState{
		VoiceInterview: []models.VoiceInterviewQuestion{
			{ID: 1, Status: models.QuestionCompleted, Transcript: "first answer"},
			{ID: 2, Status: models.QuestionCompleted, Transcript: "second answer"},
			{ID: 3, Status: models.QuestionCompleted, Transcript: ""},
			{ID: 4, Status: models.QuestionPending},
		},
	}

	icp := seedICP(userID, state, now)

	assert.Equal(t, userID, icp.UserID)
	assert.Equal(t, now, icp.GeneratedAt)
	// only answered questions with a transcript seed the profile
	assert.Equal(t, []string{"first answer", "second answer"}, icp.PainPoints)
}

func TestSeedICPEmptyInterview(t *testing.T) {
	icp := seedICP(primitive.NewObjectID(), models.WizardState{}, time.Now())

	assert.NotNil(t, icp.PainPoints)
	assert.Empty(t, icp.PainPoints)
}
