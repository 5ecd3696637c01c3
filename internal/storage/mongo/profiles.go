package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pribylovaa/hobby-sections/internal/keys"
	"github.com/pribylovaa/hobby-sections/internal/models"
	"github.com/pribylovaa/hobby-sections/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// profileDoc — документ коллекции profiles (_id = user_id).
type profileDoc struct {
	UserID      string    `bson:"_id"`
	DisplayName string    `bson:"display_name"`
	MainEmail   string    `bson:"main_email"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func (d profileDoc) profile() *models.Profile {
	return &models.Profile{
		UserID:      d.UserID,
		DisplayName: d.DisplayName,
		MainEmail:   d.MainEmail,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// FindProfile ищет профиль по ключу Profile(user_id); отсутствие — (nil, false, nil).
func (m *Mongo) FindProfile(ctx context.Context, key keys.Key) (*models.Profile, bool, error) {
	const op = "storage/mongo/profiles/FindProfile"

	userID, ok := storage.ProfileKeyID(key)
	if !ok {
		return nil, false, nil
	}

	profile, err := m.ProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFoundProfile) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	return profile, true, nil
}

// ProfileByID возвращает профиль по user_id или storage.ErrNotFoundProfile.
func (m *Mongo) ProfileByID(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "storage/mongo/profiles/ProfileByID"

	var doc profileDoc
	if err := m.profiles.FindOne(ctx, bson.D{{Key: "_id", Value: userID}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundProfile)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return doc.profile(), nil
}

// SaveProfile — upsert: created_at выставляется только при вставке.
func (m *Mongo) SaveProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	const op = "storage/mongo/profiles/SaveProfile"

	ts := now()
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "display_name", Value: profile.DisplayName},
			{Key: "main_email", Value: profile.MainEmail},
			{Key: "updated_at", Value: ts},
		}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "created_at", Value: ts}}},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc profileDoc
	err := m.profiles.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: profile.UserID}}, update, opts).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return doc.profile(), nil
}
