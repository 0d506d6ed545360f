package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mahdizzzz/finance-app/models"
)

// Installments and budgets are created out of band; the bot only reads them.

func (s *Store) ListInstallments(ctx context.Context) ([]models.Installment, error) {
	collection, err := s.collection(InstallmentCollection)
	if err != nil {
		return nil, err
	}

	cursor, err := collection.Find(ctx, bson.M{"user_id": s.userID})
	if err != nil {
		return nil, fmt.Errorf("error fetching installments: %v", err)
	}
	defer cursor.Close(ctx)

	var installments []models.Installment
	if err := cursor.All(ctx, &installments); err != nil {
		return nil, fmt.Errorf("error decoding installments: %v", err)
	}
	return installments, nil
}

func (s *Store) ListBudgets(ctx context.Context) ([]models.Budget, error) {
	collection, err := s.collection(BudgetCollection)
	if err != nil {
		return nil, err
	}

	cursor, err := collection.Find(ctx, bson.M{"user_id": s.userID})
	if err != nil {
		return nil, fmt.Errorf("error fetching budgets: %v", err)
	}
	defer cursor.Close(ctx)

	var budgets []models.Budget
	if err := cursor.All(ctx, &budgets); err != nil {
		return nil, fmt.Errorf("error decoding budgets: %v", err)
	}
	return budgets, nil
}
