// mongo предоставляет альтернативную реализацию storage.Storage на базе MongoDB.
package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pribylovaa/hobby-sections/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	sectionsCollection = "sections"
	profilesCollection = "profiles"
	countersCollection = "counters"
	defaultDBName      = "sections"
)

// Mongo — адаптер MongoDB: профили, секции и счётчики id секций.
type Mongo struct {
	client   *mongodriver.Client
	db       *mongodriver.Database
	sections *mongodriver.Collection
	profiles *mongodriver.Collection
	counters *mongodriver.Collection
}

var _ storage.Storage = (*Mongo)(nil)

// New подключается к MongoDB, проверяет соединение и создаёт индексы.
// Имя БД берётся из пути URI (mongodb://host:27017/<db>).
func New(ctx context.Context, uri string) (*Mongo, error) {
	const op = "storage/mongo/New"

	if uri == "" {
		return nil, fmt.Errorf("%s: empty uri", op)
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s: connect: %w", op, err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	db := cli.Database(databaseFromURI(uri))

	m := &Mongo{
		client:   cli,
		db:       db,
		sections: db.Collection(sectionsCollection),
		profiles: db.Collection(profilesCollection),
		counters: db.Collection(countersCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		m.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

// Close закрывает соединение с MongoDB.
func (m *Mongo) Close() {
	_ = m.client.Disconnect(context.Background())
}

// ensureIndexes создаёт индексы коллекции секций:
//   - уникальный (owner_id, id) — ключ секции;
//   - city и categories — фильтры выборки.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	models := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "id", Value: 1}},
			Options: options.Index().SetName("owner_id_id_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "city", Value: 1}},
			Options: options.Index().SetName("city"),
		},
		{
			Keys:    bson.D{{Key: "categories", Value: 1}},
			Options: options.Index().SetName("categories"),
		},
	}

	if _, err := m.sections.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	return nil
}

// databaseFromURI извлекает имя БД из пути URI; при отсутствии — defaultDBName.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}

	return defaultDBName
}
