package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamops/teamops-api/internal/core/domain"
)

const accountCollection = "accounts"

type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountCollection)}
}

type accountDoc struct {
	ID             string    `bson:"_id"`
	Subject        string    `bson:"subject"`
	DisplayName    string    `bson:"display_name"`
	CredentialHash string    `bson:"credential_hash"`
	Role           string    `bson:"role"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

// Create inserts a new account. A duplicate subject trips the unique index
// and is reported as domain.ErrAccountExists.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := accountDoc{
		ID:             account.ID,
		Subject:        account.Subject,
		DisplayName:    account.DisplayName,
		CredentialHash: account.CredentialHash,
		Role:           account.Role,
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return account, nil
}

// FindBySubject retrieves an account by its normalized subject.
func (r *AccountRepository) FindBySubject(ctx context.Context, subject string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	if err := r.coll.FindOne(ctx, bson.M{"subject": subject}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	return &domain.Account{
		ID:             doc.ID,
		Subject:        doc.Subject,
		DisplayName:    doc.DisplayName,
		CredentialHash: doc.CredentialHash,
		Role:           doc.Role,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}, nil
}

func (r *AccountRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "subject", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
