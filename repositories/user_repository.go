package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lykr/lykr_backend/actions"
	"github.com/lykr/lykr_backend/config"
	"github.com/lykr/lykr_backend/models"
)

// UserRepository implements actions.UserStore over the users collection.
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Client) *UserRepository {
	return &UserRepository{
		collection: config.GetCollection(db, "users"),
	}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, actions.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, actions.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"resetToken":          token,
			"resetTokenExpiresAt": expiresAt,
			"updatedAt":           time.Now(),
		},
	}
	return r.updateByEmail(ctx, email, update)
}

func (r *UserRepository) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, actions.ErrNotFound
	}
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"resetToken": token}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, actions.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) SetOTP(ctx context.Context, email string, otp models.OTPInfo) error {
	update := bson.M{
		"$set": bson.M{
			"otpInfo":   otp,
			"updatedAt": time.Now(),
		},
	}
	return r.updateByEmail(ctx, email, update)
}

func (r *UserRepository) ClearOTP(ctx context.Context, email string) error {
	update := bson.M{
		"$unset": bson.M{"otpInfo": ""},
		"$set":   bson.M{"updatedAt": time.Now()},
	}
	return r.updateByEmail(ctx, email, update)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	update := bson.M{
		"$set": bson.M{
			"password":  passwordHash,
			"updatedAt": time.Now(),
		},
		"$unset": bson.M{
			"resetToken":          "",
			"resetTokenExpiresAt": "",
		},
	}
	return r.updateByEmail(ctx, email, update)
}

// FindOrCreateOAuthUser links an OAuth identity to an existing account by
// email, or creates a fresh one.
func (r *UserRepository) FindOrCreateOAuthUser(ctx context.Context, email, name, googleID, appleUserID string) (*models.User, error) {
	user, err := r.FindByEmail(ctx, email)
	if err == nil {
		set := bson.M{"updatedAt": time.Now()}
		if googleID != "" && user.GoogleID == "" {
			set["googleId"] = googleID
			user.GoogleID = googleID
		}
		if appleUserID != "" && user.AppleUserID == "" {
			set["appleUserID"] = appleUserID
			user.AppleUserID = appleUserID
		}
		if err := r.updateByEmail(ctx, email, bson.M{"$set": set}); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !errors.Is(err, actions.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	return r.Create(ctx, &models.User{
		Name:        name,
		Email:       email,
		GoogleID:    googleID,
		AppleUserID: appleUserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// MarkOnboardingDone flips the flag that gates the campaign endpoints.
func (r *UserRepository) MarkOnboardingDone(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{
		"$set": bson.M{
			"onboardingDone": true,
			"updatedAt":      time.Now(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *UserRepository) updateByEmail(ctx context.Context, email string, update bson.M) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return actions.ErrNotFound
	}
	return nil
}
