package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lykr/lykr_backend/config"
	"github.com/lykr/lykr_backend/models"
)

// CRMRepository owns the company, lead, campaign and ICP collections.
type CRMRepository struct {
	companies  *mongo.Collection
	leads      *mongo.Collection
	campaigns  *mongo.Collection
	icps       *mongo.Collection
	interviews *mongo.Collection
}

func NewCRMRepository(db *mongo.Client) *CRMRepository {
	return &CRMRepository{
		companies:  config.GetCollection(db, "companies"),
		leads:      config.GetCollection(db, "leads"),
		campaigns:  config.GetCollection(db, "campaigns"),
		icps:       config.GetCollection(db, "icps"),
		interviews: config.GetCollection(db, "interviews"),
	}
}

// CompleteOnboarding materializes the finished wizard document into a company
// profile, one interview record per answered question, and an initial ideal
// customer profile seeded from the raw answers.
func (r *CRMRepository) CompleteOnboarding(ctx context.Context, userID primitive.ObjectID, state models.WizardState) (*models.Company, error) {
	now := time.Now()

	competitors := make([]string, 0, len(state.Competitors))
	for _, c := range state.Competitors {
		if c != "" {
			competitors = append(competitors, c)
		}
	}

	company := &models.Company{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Name:        state.BusinessInfo.Name,
		WebsiteURL:  state.Website.URL,
		LinkedInURL: state.Website.LinkedIn,
		Facebook:    state.Website.Facebook,
		Twitter:     state.Website.Twitter,
		YouTube:     state.Website.YouTube,
		Competitors: competitors,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// One company per account, re-running onboarding replaces it
	opts := options.Replace().SetUpsert(true)
	_, err := r.companies.ReplaceOne(ctx, bson.M{"userId": userID}, company, opts)
	if err != nil {
		return nil, err
	}

	for _, q := range state.VoiceInterview {
		if q.Status != models.QuestionCompleted {
			continue
		}
		record := models.InterviewRecord{
			ID:             primitive.NewObjectID(),
			UserID:         userID,
			QuestionID:     q.ID,
			QuestionText:   q.Text,
			TranscriptText: q.Transcript,
			CreatedAt:      now,
		}
		if _, err := r.interviews.InsertOne(ctx, record); err != nil {
			return nil, err
		}
	}

	if err := r.UpsertICP(ctx, seedICP(userID, state, now)); err != nil {
		return nil, err
	}

	return company, nil
}

// seedICP builds the initial customer profile from the raw interview answers.
// Later profile generation refines it; completing the wizard only guarantees
// a row exists.
func seedICP(userID primitive.ObjectID, state models.WizardState, now time.Time) *models.ICP {
	icp := &models.ICP{
		UserID:      userID,
		PainPoints:  []string{},
		GeneratedAt: now,
		CreatedAt:   now,
	}
	for _, q := range state.VoiceInterview {
		if q.Status == models.QuestionCompleted && q.Transcript != "" {
			icp.PainPoints = append(icp.PainPoints, q.Transcript)
		}
	}
	return icp
}

func (r *CRMRepository) FindCompanyByUser(ctx context.Context, userID primitive.ObjectID) (*models.Company, error) {
	var company models.Company
	err := r.companies.FindOne(ctx, bson.M{"userId": userID}).Decode(&company)
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CRMRepository) CreateCampaign(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error) {
	if campaign.ID.IsZero() {
		campaign.ID = primitive.NewObjectID()
	}
	now := time.Now()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now
	if campaign.Status == "" {
		campaign.Status = models.CampaignDraft
	}
	_, err := r.campaigns.InsertOne(ctx, campaign)
	if err != nil {
		return nil, err
	}
	return campaign, nil
}

func (r *CRMRepository) ListCampaigns(ctx context.Context, userID primitive.ObjectID) ([]models.Campaign, error) {
	cursor, err := r.campaigns.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	campaigns := []models.Campaign{}
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *CRMRepository) CreateLead(ctx context.Context, lead *models.Lead) (*models.Lead, error) {
	if lead.ID.IsZero() {
		lead.ID = primitive.NewObjectID()
	}
	now := time.Now()
	lead.CreatedAt = now
	lead.UpdatedAt = now
	if lead.Source == "" {
		lead.Source = models.LeadSourceManual
	}
	_, err := r.leads.InsertOne(ctx, lead)
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *CRMRepository) ListLeads(ctx context.Context, userID primitive.ObjectID, campaignID *primitive.ObjectID) ([]models.Lead, error) {
	filter := bson.M{"userId": userID}
	if campaignID != nil {
		filter["campaignId"] = *campaignID
	}

	cursor, err := r.leads.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	leads := []models.Lead{}
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *CRMRepository) FindICP(ctx context.Context, userID primitive.ObjectID) (*models.ICP, error) {
	var icp models.ICP
	err := r.icps.FindOne(ctx, bson.M{"userId": userID}).Decode(&icp)
	if err != nil {
		return nil, err
	}
	return &icp, nil
}

func (r *CRMRepository) UpsertICP(ctx context.Context, icp *models.ICP) error {
	if icp.ID.IsZero() {
		icp.ID = primitive.NewObjectID()
	}
	icp.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	_, err := r.icps.ReplaceOne(ctx, bson.M{"userId": icp.UserID}, icp, opts)
	return err
}

func (r *CRMRepository) ListInterviewRecords(ctx context.Context, userID primitive.ObjectID) ([]models.InterviewRecord, error) {
	cursor, err := r.interviews.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "questionId", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.InterviewRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
