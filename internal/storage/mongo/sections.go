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

// sectionDoc — документ коллекции sections.
// categories/city = null соответствуют nil в models.SectionRecord.
type sectionDoc struct {
	OwnerID     string    `bson:"owner_id"`
	ID          int64     `bson:"id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Categories  []string  `bson:"categories"`
	City        *string   `bson:"city"`
	Address     string    `bson:"address"`
	WorkingTime string    `bson:"working_time"`
	Price       int       `bson:"price"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func (d sectionDoc) section() *models.Section {
	return models.SectionFromRecord(models.SectionRecord{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		Description: d.Description,
		Categories:  d.Categories,
		City:        d.City,
		Address:     d.Address,
		WorkingTime: d.WorkingTime,
		Price:       d.Price,
	})
}

// counterDoc — счётчик id секций владельца (_id = owner_id).
type counterDoc struct {
	OwnerID string `bson:"_id"`
	Seq     int64  `bson:"seq"`
}

// now — текущее время с точностью MongoDB DateTime (миллисекунды).
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func sectionFilter(ownerID string, id int64) bson.D {
	return bson.D{{Key: "owner_id", Value: ownerID}, {Key: "id", Value: id}}
}

// NextSectionID атомарно инкрементирует счётчик владельца ($inc c upsert).
// id уникальны в пределах владельца и начинаются с 1.
func (m *Mongo) NextSectionID(ctx context.Context, ownerID string) (int64, error) {
	const op = "storage/mongo/sections/NextSectionID"

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}}

	var c counterDoc
	err := m.counters.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: ownerID}}, update, opts).Decode(&c)
	if mongodriver.IsDuplicateKeyError(err) {
		// Гонка двух upsert за первый id владельца: второй попадает на уже созданный документ.
		err = m.counters.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: ownerID}}, update, opts).Decode(&c)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return c.Seq, nil
}

// CreateSection вставляет документ секции.
// Ошибки: storage.ErrAlreadyExists при нарушении уникального (owner_id, id).
func (m *Mongo) CreateSection(ctx context.Context, section *models.Section) (*models.Section, error) {
	const op = "storage/mongo/sections/CreateSection"

	rec := section.Record()
	ts := now()

	doc := sectionDoc{
		OwnerID:     rec.OwnerID,
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Categories:  rec.Categories,
		City:        rec.City,
		Address:     rec.Address,
		WorkingTime: rec.WorkingTime,
		Price:       rec.Price,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	if _, err := m.sections.InsertOne(ctx, doc); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return doc.section(), nil
}

// SectionByKey возвращает секцию по ключу Profile(owner)/Section(id).
func (m *Mongo) SectionByKey(ctx context.Context, key keys.Key) (*models.Section, error) {
	const op = "storage/mongo/sections/SectionByKey"

	ownerID, id, ok := storage.SectionKeyParts(key)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundSection)
	}

	var doc sectionDoc
	if err := m.sections.FindOne(ctx, sectionFilter(ownerID, id)).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundSection)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return doc.section(), nil
}

// UpdateSection перезаписывает изменяемые поля и updated_at.
func (m *Mongo) UpdateSection(ctx context.Context, section *models.Section) (*models.Section, error) {
	const op = "storage/mongo/sections/UpdateSection"

	rec := section.Record()

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: rec.Name},
		{Key: "description", Value: rec.Description},
		{Key: "categories", Value: rec.Categories},
		{Key: "city", Value: rec.City},
		{Key: "address", Value: rec.Address},
		{Key: "working_time", Value: rec.WorkingTime},
		{Key: "price", Value: rec.Price},
		{Key: "updated_at", Value: now()},
	}}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc sectionDoc
	err := m.sections.FindOneAndUpdate(ctx, sectionFilter(rec.OwnerID, rec.ID), update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundSection)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return doc.section(), nil
}

// DeleteSection удаляет секцию по ключу.
func (m *Mongo) DeleteSection(ctx context.Context, key keys.Key) error {
	const op = "storage/mongo/sections/DeleteSection"

	ownerID, id, ok := storage.SectionKeyParts(key)
	if !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFoundSection)
	}

	res, err := m.sections.DeleteOne(ctx, sectionFilter(ownerID, id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFoundSection)
	}

	return nil
}

// listFilter строит фильтр выборки; совпадение categories по элементу массива.
func listFilter(filter storage.SectionFilter) bson.D {
	f := bson.D{}

	if filter.OwnerID != "" {
		f = append(f, bson.E{Key: "owner_id", Value: filter.OwnerID})
	}

	if filter.City != "" {
		f = append(f, bson.E{Key: "city", Value: filter.City})
	}

	if filter.Category != "" {
		f = append(f, bson.E{Key: "categories", Value: filter.Category})
	}

	return f
}

// ListSections возвращает секции по фильтру в порядке (owner_id, id).
func (m *Mongo) ListSections(ctx context.Context, filter storage.SectionFilter) ([]*models.Section, error) {
	const op = "storage/mongo/sections/ListSections"

	opts := options.Find().SetSort(bson.D{{Key: "owner_id", Value: 1}, {Key: "id", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}

	cur, err := m.sections.Find(ctx, listFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var result []*models.Section
	for cur.Next(ctx) {
		var doc sectionDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		result = append(result, doc.section())
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}
