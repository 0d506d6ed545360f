package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mahdizzzz/finance-app/models"
)

// UpsertAccount sets the balance for the named account, creating it if
// needed. The update is a $set merge, so fields outside balance/updated_at
// survive a re-declaration.
func (s *Store) UpsertAccount(ctx context.Context, name string, balance int64) error {
	collection, err := s.collection(AccountCollection)
	if err != nil {
		return err
	}

	filter := bson.M{"user_id": s.userID, "name": name}
	update := accountUpdate(balance, time.Now().UTC())
	opts := options.UpdateOne().SetUpsert(true)
	if _, err := collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("error upserting account %q: %v", name, err)
	}
	return nil
}

// accountUpdate builds the upsert document. It must stay a $set over
// balance/updated_at only, so fields outside those two survive a
// re-declaration of the same account name.
func accountUpdate(balance int64, now time.Time) bson.M {
	return bson.M{"$set": bson.M{
		"balance":    balance,
		"updated_at": now,
	}}
}

// GetAccount returns (nil, nil) when the name is unknown; absence is not an
// error.
func (s *Store) GetAccount(ctx context.Context, name string) (*models.Account, error) {
	collection, err := s.collection(AccountCollection)
	if err != nil {
		return nil, err
	}

	var account models.Account
	err = collection.FindOne(ctx, bson.M{"user_id": s.userID, "name": name}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching account %q: %v", name, err)
	}
	return &account, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	collection, err := s.collection(AccountCollection)
	if err != nil {
		return nil, err
	}

	cursor, err := collection.Find(ctx, bson.M{"user_id": s.userID})
	if err != nil {
		return nil, fmt.Errorf("error fetching accounts: %v", err)
	}
	defer cursor.Close(ctx)

	var accounts []models.Account
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("error decoding accounts: %v", err)
	}
	return accounts, nil
}
