package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// MongoDB manages the client connection for a single named database.
type MongoDB struct {
	Client *mongo.Client
	Ctx    context.Context
	Cancel context.CancelFunc
	URL    string
	DBName string
}

func NewMongoDB(url, dbName string) *MongoDB {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	return &MongoDB{
		Ctx:    ctx,
		Cancel: cancel,
		URL:    url,
		DBName: dbName,
	}
}

// Connect dials the server, verifies it answers, and bootstraps the
// unique indexes the uniqueness invariants rely on.
func (m *MongoDB) Connect() error {
	client, err := mongo.Connect(m.Ctx, options.Client().ApplyURI(m.URL))
	if err != nil {
		return err
	}
	m.Client = client
	if err := m.Client.Ping(m.Ctx, nil); err != nil {
		return err
	}
	return EnsureIndexes(m.Ctx, m.Client, m.DBName)
}

func (m *MongoDB) Disconnect() error {
	m.Cancel()
	return m.Client.Disconnect(m.Ctx)
}
