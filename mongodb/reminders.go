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

func (s *Store) InsertReminder(ctx context.Context, r *models.Reminder) error {
	collection, err := s.collection(ReminderCollection)
	if err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.UserID = s.userID
	if _, err := collection.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("error inserting reminder: %v", err)
	}
	return nil
}

// DueReminders returns unsent reminders whose run time is at or before now,
// oldest first.
func (s *Store) DueReminders(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	collection, err := s.collection(ReminderCollection)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"user_id": s.userID,
		"sent":    false,
		"run_at":  bson.M{"$lte": now},
	}
	opts := options.Find().SetSort(bson.D{{Key: "run_at", Value: 1}})
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching due reminders: %v", err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("error decoding reminders: %v", err)
	}
	return reminders, nil
}

func (s *Store) DeleteReminder(ctx context.Context, id string) error {
	collection, err := s.collection(ReminderCollection)
	if err != nil {
		return err
	}
	if _, err := collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": s.userID}); err != nil {
		return fmt.Errorf("error deleting reminder: %v", err)
	}
	return nil
}
