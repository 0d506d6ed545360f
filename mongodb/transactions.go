package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mahdizzzz/finance-app/models"
)

func (s *Store) InsertTransaction(ctx context.Context, tx *models.Transaction) error {
	collection, err := s.collection(TransactionCollection)
	if err != nil {
		return err
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	tx.UserID = s.userID
	if _, err := collection.InsertOne(ctx, tx); err != nil {
		return fmt.Errorf("error inserting transaction: %v", err)
	}
	return nil
}

// ListTransactions returns transactions newest-first. kind filters to one
// transaction kind when non-empty; from/to bound created_at as a half-open
// [from, to) window, with the zero time meaning unbounded on that side.
func (s *Store) ListTransactions(ctx context.Context, kind string, from, to time.Time) ([]models.Transaction, error) {
	collection, err := s.collection(TransactionCollection)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"user_id": s.userID}
	if kind != "" {
		filter["kind"] = kind
	}
	window := bson.M{}
	if !from.IsZero() {
		window["$gte"] = from
	}
	if !to.IsZero() {
		window["$lt"] = to
	}
	if len(window) > 0 {
		filter["created_at"] = window
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching transactions: %v", err)
	}
	defer cursor.Close(ctx)

	var transactions []models.Transaction
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, fmt.Errorf("error decoding transactions: %v", err)
	}
	return transactions, nil
}
