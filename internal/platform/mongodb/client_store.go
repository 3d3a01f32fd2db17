package mongodb

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/store"
)

// ClientStore implements store.ClientStore on MongoDB.
type ClientStore struct {
	db *DB
}

// NewClientStore creates a MongoDB-backed client store.
func NewClientStore(db *DB) *ClientStore {
	return &ClientStore{db: db}
}

// Ensure ClientStore implements store.ClientStore.
var _ store.ClientStore = (*ClientStore)(nil)

// clientDoc is the persisted shape of a client.
type clientDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	Company   string             `bson:"company"`
	Status    string             `bson:"status"`
	ManagerID primitive.ObjectID `bson:"managerId"`
	Notes     string             `bson:"notes"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d clientDoc) toDomain(managerName string) domain.Client {
	return domain.Client{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		Company:     d.Company,
		Status:      domain.ClientStatus(d.Status),
		ManagerID:   d.ManagerID.Hex(),
		ManagerName: managerName,
		Notes:       d.Notes,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// neverMatch is a filter that selects no documents. Used when a query
// carries a malformed ObjectID: the result set is empty rather than an
// error, matching how an unknown ID behaves.
var neverMatch = bson.M{"_id": bson.M{"$exists": false}}

// clientFilter translates a ClientQuery into a Mongo filter document.
func clientFilter(q store.ClientQuery) bson.M {
	filter := bson.M{}
	if q.ManagerID != "" {
		oid, err := primitive.ObjectIDFromHex(q.ManagerID)
		if err != nil {
			return neverMatch
		}
		filter["managerId"] = oid
	}
	if q.Status != "" {
		filter["status"] = string(q.Status)
	}
	if q.Search != "" {
		// Substring match, so regex metacharacters in the input are literal.
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"email": pattern},
			bson.M{"company": pattern},
		}
	}
	return filter
}

// Create implements store.ClientStore.Create.
func (s *ClientStore) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	col, err := s.db.collection(clientsCollection)
	if err != nil {
		return nil, err
	}

	managerID, err := primitive.ObjectIDFromHex(client.ManagerID)
	if err != nil {
		return nil, store.NewStoreError("client", "create", err)
	}

	now := time.Now().UTC()
	doc := clientDoc{
		ID:        primitive.NewObjectID(),
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		Company:   client.Company,
		Status:    string(client.Status),
		ManagerID: managerID,
		Notes:     client.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := col.InsertOne(ctx, doc); err != nil {
		return nil, store.NewStoreError("client", "create", err)
	}

	created := doc.toDomain(s.lookupName(ctx, managerID))
	return &created, nil
}

// List implements store.ClientStore.List. The page and the total come
// from two separate reads; they can disagree briefly under concurrent
// writes, which is acceptable for a dashboard-class listing.
func (s *ClientStore) List(ctx context.Context, q store.ClientQuery) ([]domain.Client, int64, error) {
	col, err := s.db.collection(clientsCollection)
	if err != nil {
		return nil, 0, err
	}

	filter := clientFilter(q)

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(q.Offset).
		SetLimit(q.Limit)

	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, store.NewStoreError("client", "list", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	var docs []clientDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, store.NewStoreError("client", "list", err)
	}

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, store.NewStoreError("client", "count", err)
	}

	items := s.enrich(ctx, docs)
	return items, total, nil
}

// Count implements store.ClientStore.Count.
func (s *ClientStore) Count(ctx context.Context, q store.ClientQuery) (int64, error) {
	col, err := s.db.collection(clientsCollection)
	if err != nil {
		return 0, err
	}
	total, err := col.CountDocuments(ctx, clientFilter(q))
	if err != nil {
		return 0, store.NewStoreError("client", "count", err)
	}
	return total, nil
}

// GetByID implements store.ClientStore.GetByID.
func (s *ClientStore) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	col, err := s.db.collection(clientsCollection)
	if err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrClientNotFound
	}

	var doc clientDoc
	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrClientNotFound
		}
		return nil, store.NewStoreError("client", "get", err)
	}

	client := doc.toDomain(s.lookupName(ctx, doc.ManagerID))
	return &client, nil
}

// Update implements store.ClientStore.Update. ManagerID is never part of
// the update document; ownership is fixed at creation.
func (s *ClientStore) Update(ctx context.Context, id string, upd store.ClientUpdate) (*domain.Client, error) {
	col, err := s.db.collection(clientsCollection)
	if err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrClientNotFound
	}

	set := bson.M{
		"name":      upd.Name,
		"email":     upd.Email,
		"phone":     upd.Phone,
		"company":   upd.Company,
		"status":    string(upd.Status),
		"notes":     upd.Notes,
		"updatedAt": time.Now().UTC(),
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc clientDoc
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrClientNotFound
		}
		return nil, store.NewStoreError("client", "update", err)
	}

	client := doc.toDomain(s.lookupName(ctx, doc.ManagerID))
	return &client, nil
}

// Delete implements store.ClientStore.Delete.
func (s *ClientStore) Delete(ctx context.Context, id string) error {
	col, err := s.db.collection(clientsCollection)
	if err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrClientNotFound
	}

	err = col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return store.ErrClientNotFound
		}
		return store.NewStoreError("client", "delete", err)
	}
	return nil
}

// First implements store.ClientStore.First.
func (s *ClientStore) First(ctx context.Context) (*domain.Client, error) {
	col, err := s.db.collection(clientsCollection)
	if err != nil {
		return nil, err
	}

	var doc clientDoc
	if err := col.FindOne(ctx, bson.M{}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrClientNotFound
		}
		return nil, store.NewStoreError("client", "first", err)
	}

	client := doc.toDomain(s.lookupName(ctx, doc.ManagerID))
	return &client, nil
}

// DeleteAll removes every client. Used by the seed command only.
func (s *ClientStore) DeleteAll(ctx context.Context) error {
	col, err := s.db.collection(clientsCollection)
	if err != nil {
		return err
	}
	if _, err := col.DeleteMany(ctx, bson.M{}); err != nil {
		return store.NewStoreError("client", "delete_all", err)
	}
	return nil
}

// enrich resolves manager display names for a page of clients. Lookup
// failures are logged and produce unenriched items.
func (s *ClientStore) enrich(ctx context.Context, docs []clientDoc) []domain.Client {
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ManagerID)
	}

	names := map[primitive.ObjectID]string{}
	if users, err := s.db.collection(usersCollection); err == nil {
		if resolved, err := displayNames(ctx, users, dedupe(ids)); err != nil {
			s.db.logger.Warn("manager name lookup failed", "error", err)
		} else {
			names = resolved
		}
	}

	items := make([]domain.Client, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toDomain(names[d.ManagerID]))
	}
	return items
}

// lookupName resolves a single manager's display name, best-effort.
func (s *ClientStore) lookupName(ctx context.Context, id primitive.ObjectID) string {
	users, err := s.db.collection(usersCollection)
	if err != nil {
		return ""
	}
	names, err := displayNames(ctx, users, []primitive.ObjectID{id})
	if err != nil {
		s.db.logger.Warn("manager name lookup failed", "error", err)
		return ""
	}
	return names[id]
}
