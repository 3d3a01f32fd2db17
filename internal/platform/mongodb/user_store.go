package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/store"
)

// UserStore implements store.UserStore on MongoDB.
type UserStore struct {
	db *DB
}

// NewUserStore creates a MongoDB-backed user store.
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

// Ensure UserStore implements store.UserStore.
var _ store.UserStore = (*UserStore)(nil)

// userDoc is the persisted shape of a user account.
type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	Name         string             `bson:"name"`
	Role         string             `bson:"role"`
	Avatar       string             `bson:"avatar"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Name:         d.Name,
		Role:         domain.Role(d.Role),
		Avatar:       d.Avatar,
		CreatedAt:    d.CreatedAt,
	}
}

// EnsureIndexes creates the unique email index. Called once at startup.
func (s *UserStore) EnsureIndexes(ctx context.Context) error {
	col, err := s.db.collection(usersCollection)
	if err != nil {
		return err
	}
	_, err = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return store.NewStoreError("user", "ensure_indexes", err)
	}
	return nil
}

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	col, err := s.db.collection(usersCollection)
	if err != nil {
		return err
	}

	doc := userDoc{
		ID:           primitive.NewObjectID(),
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Name:         user.Name,
		Role:         string(user.Role),
		Avatar:       user.Avatar,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrEmailExists
		}
		return store.NewStoreError("user", "create", err)
	}

	user.ID = doc.ID.Hex()
	user.CreatedAt = doc.CreatedAt
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	col, err := s.db.collection(usersCollection)
	if err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrUserNotFound
	}

	var doc userDoc
	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewStoreError("user", "get", err)
	}

	user := doc.toDomain()
	return &user, nil
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	col, err := s.db.collection(usersCollection)
	if err != nil {
		return nil, err
	}

	var doc userDoc
	if err := col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewStoreError("user", "get", err)
	}

	user := doc.toDomain()
	return &user, nil
}

// Update implements store.UserStore.Update.
func (s *UserStore) Update(ctx context.Context, id string, upd store.UserUpdate) (*domain.User, error) {
	col, err := s.db.collection(usersCollection)
	if err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrUserNotFound
	}

	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Avatar != nil {
		set["avatar"] = *upd.Avatar
	}

	var doc userDoc
	if len(set) == 0 {
		// Nothing to change; read the current document.
		err = col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	} else {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewStoreError("user", "update", err)
	}

	user := doc.toDomain()
	return &user, nil
}

// List implements store.UserStore.List.
func (s *UserStore) List(ctx context.Context) ([]domain.User, error) {
	col, err := s.db.collection(usersCollection)
	if err != nil {
		return nil, err
	}

	cur, err := col.Find(ctx, bson.M{})
	if err != nil {
		return nil, store.NewStoreError("user", "list", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, store.NewStoreError("user", "list", err)
	}

	users := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, nil
}

// FindFirstByRole implements store.UserStore.FindFirstByRole.
func (s *UserStore) FindFirstByRole(ctx context.Context, role domain.Role) (*domain.User, error) {
	col, err := s.db.collection(usersCollection)
	if err != nil {
		return nil, err
	}

	var doc userDoc
	if err := col.FindOne(ctx, bson.M{"role": string(role)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewStoreError("user", "find_by_role", err)
	}

	user := doc.toDomain()
	return &user, nil
}

// DeleteAll removes every user. Used by the seed command only.
func (s *UserStore) DeleteAll(ctx context.Context) error {
	col, err := s.db.collection(usersCollection)
	if err != nil {
		return err
	}
	if _, err := col.DeleteMany(ctx, bson.M{}); err != nil {
		return store.NewStoreError("user", "delete_all", err)
	}
	return nil
}
