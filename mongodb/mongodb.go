package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/mahdizzzz/finance-app/logger"
)

// Collection names are fixed; they are not configurable.
const (
	TransactionCollection = "transactions"
	AccountCollection     = "accounts"
	InstallmentCollection = "installments"
	BudgetCollection      = "budgets"
	ReminderCollection    = "reminders"
)

var errNotConnected = errors.New("mongodb: store not connected")

// Store is the document-store adapter. Every operation is scoped to the
// single configured user id; callers never pass one.
type Store struct {
	client   *mongo.Client
	database string
	userID   string
}

// Connect builds a Store for the given URI. The driver connects lazily, so a
// reachable server is not required here; a missing URI is reported but still
// yields a Store whose operations fail at first use.
func Connect(uri, database, userID string) (*Store, error) {
	s := &Store{database: database, userID: userID}

	if uri == "" {
		return s, fmt.Errorf("MONGO_URI not set")
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		logger.Get().Error("failed to build MongoDB client", zap.Error(err))
		return s, fmt.Errorf("error connecting to MongoDB: %v", err)
	}

	s.client = client
	logger.Get().Info("MongoDB client ready", zap.String("database", database))
	return s, nil
}

func (s *Store) Close() {
	if s.client == nil {
		return
	}
	if err := s.client.Disconnect(context.TODO()); err != nil {
		logger.Get().Error("failed to disconnect from MongoDB", zap.Error(err))
		return
	}
	logger.Get().Info("disconnected from MongoDB")
}

func (s *Store) collection(name string) (*mongo.Collection, error) {
	if s.client == nil {
		return nil, errNotConnected
	}
	return s.client.Database(s.database).Collection(name), nil
}
