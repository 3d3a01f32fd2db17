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

// TaskStore implements store.TaskStore on MongoDB.
type TaskStore struct {
	db *DB
}

// NewTaskStore creates a MongoDB-backed task store.
func NewTaskStore(db *DB) *TaskStore {
	return &TaskStore{db: db}
}

// Ensure TaskStore implements store.TaskStore.
var _ store.TaskStore = (*TaskStore)(nil)

// taskDoc is the persisted shape of a task. ClientID is stored as the
// raw string reference; it is carried, not joined.
type taskDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	ClientID    string             `bson:"clientId"`
	AssigneeID  primitive.ObjectID `bson:"assigneeId"`
	Status      string             `bson:"status"`
	Priority    string             `bson:"priority"`
	DueDate     string             `bson:"dueDate"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d taskDoc) toDomain(assigneeName string) domain.Task {
	return domain.Task{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		ClientID:     d.ClientID,
		AssigneeID:   d.AssigneeID.Hex(),
		AssigneeName: assigneeName,
		Status:       domain.TaskStatus(d.Status),
		Priority:     domain.TaskPriority(d.Priority),
		DueDate:      d.DueDate,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// taskFilter translates a TaskQuery into a Mongo filter document.
func taskFilter(q store.TaskQuery) bson.M {
	filter := bson.M{}
	if q.AssigneeID != "" {
		oid, err := primitive.ObjectIDFromHex(q.AssigneeID)
		if err != nil {
			return neverMatch
		}
		filter["assigneeId"] = oid
	}
	if q.Status != "" {
		filter["status"] = string(q.Status)
	}
	return filter
}

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	col, err := s.db.collection(tasksCollection)
	if err != nil {
		return nil, err
	}

	assigneeID, err := primitive.ObjectIDFromHex(task.AssigneeID)
	if err != nil {
		return nil, store.NewStoreError("task", "create", err)
	}

	now := time.Now().UTC()
	doc := taskDoc{
		ID:          primitive.NewObjectID(),
		Title:       task.Title,
		Description: task.Description,
		ClientID:    task.ClientID,
		AssigneeID:  assigneeID,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		DueDate:     task.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := col.InsertOne(ctx, doc); err != nil {
		return nil, store.NewStoreError("task", "create", err)
	}

	created := doc.toDomain(s.lookupName(ctx, assigneeID))
	return &created, nil
}

// List implements store.TaskStore.List.
func (s *TaskStore) List(ctx context.Context, q store.TaskQuery) ([]domain.Task, int64, error) {
	col, err := s.db.collection(tasksCollection)
	if err != nil {
		return nil, 0, err
	}

	filter := taskFilter(q)

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(q.Offset).
		SetLimit(q.Limit)

	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, store.NewStoreError("task", "list", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	var docs []taskDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, store.NewStoreError("task", "list", err)
	}

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, store.NewStoreError("task", "count", err)
	}

	items := s.enrich(ctx, docs)
	return items, total, nil
}

// Count implements store.TaskStore.Count.
func (s *TaskStore) Count(ctx context.Context, q store.TaskQuery) (int64, error) {
	col, err := s.db.collection(tasksCollection)
	if err != nil {
		return 0, err
	}
	total, err := col.CountDocuments(ctx, taskFilter(q))
	if err != nil {
		return 0, store.NewStoreError("task", "count", err)
	}
	return total, nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	col, err := s.db.collection(tasksCollection)
	if err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrTaskNotFound
	}

	var doc taskDoc
	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrTaskNotFound
		}
		return nil, store.NewStoreError("task", "get", err)
	}

	task := doc.toDomain(s.lookupName(ctx, doc.AssigneeID))
	return &task, nil
}

// Update implements store.TaskStore.Update. Unlike clients, the owner
// field is part of every update: tasks follow the acting principal.
func (s *TaskStore) Update(ctx context.Context, id string, upd store.TaskUpdate) (*domain.Task, error) {
	col, err := s.db.collection(tasksCollection)
	if err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrTaskNotFound
	}

	assigneeID, err := primitive.ObjectIDFromHex(upd.AssigneeID)
	if err != nil {
		return nil, store.NewStoreError("task", "update", err)
	}

	set := bson.M{
		"title":       upd.Title,
		"description": upd.Description,
		"clientId":    upd.ClientID,
		"assigneeId":  assigneeID,
		"status":      string(upd.Status),
		"priority":    string(upd.Priority),
		"dueDate":     upd.DueDate,
		"updatedAt":   time.Now().UTC(),
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc taskDoc
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrTaskNotFound
		}
		return nil, store.NewStoreError("task", "update", err)
	}

	task := doc.toDomain(s.lookupName(ctx, doc.AssigneeID))
	return &task, nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	col, err := s.db.collection(tasksCollection)
	if err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrTaskNotFound
	}

	err = col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return store.ErrTaskNotFound
		}
		return store.NewStoreError("task", "delete", err)
	}
	return nil
}

// statusCountDoc is one bucket of the status aggregation.
type statusCountDoc struct {
	Status string `bson:"_id"`
	Count  int64  `bson:"count"`
}

// StatusCounts implements store.TaskStore.StatusCounts with a grouped
// aggregation. An empty assigneeID counts across the whole collection.
func (s *TaskStore) StatusCounts(ctx context.Context, assigneeID string) (map[domain.TaskStatus]int64, error) {
	col, err := s.db.collection(tasksCollection)
	if err != nil {
		return nil, err
	}

	match := taskFilter(store.TaskQuery{AssigneeID: assigneeID})
	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}

	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, store.NewStoreError("task", "status_counts", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	counts := make(map[domain.TaskStatus]int64)
	for cur.Next(ctx) {
		var doc statusCountDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, store.NewStoreError("task", "status_counts", err)
		}
		counts[domain.TaskStatus(doc.Status)] = doc.Count
	}
	if err := cur.Err(); err != nil {
		return nil, store.NewStoreError("task", "status_counts", err)
	}
	return counts, nil
}

// DeleteAll removes every task. Used by the seed command only.
func (s *TaskStore) DeleteAll(ctx context.Context) error {
	col, err := s.db.collection(tasksCollection)
	if err != nil {
		return err
	}
	if _, err := col.DeleteMany(ctx, bson.M{}); err != nil {
		return store.NewStoreError("task", "delete_all", err)
	}
	return nil
}

// enrich resolves assignee display names for a page of tasks.
func (s *TaskStore) enrich(ctx context.Context, docs []taskDoc) []domain.Task {
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.AssigneeID)
	}

	names := map[primitive.ObjectID]string{}
	if users, err := s.db.collection(usersCollection); err == nil {
		if resolved, err := displayNames(ctx, users, dedupe(ids)); err != nil {
			s.db.logger.Warn("assignee name lookup failed", "error", err)
		} else {
			names = resolved
		}
	}

	items := make([]domain.Task, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toDomain(names[d.AssigneeID]))
	}
	return items
}

// lookupName resolves a single assignee's display name, best-effort.
func (s *TaskStore) lookupName(ctx context.Context, id primitive.ObjectID) string {
	users, err := s.db.collection(usersCollection)
	if err != nil {
		return ""
	}
	names, err := displayNames(ctx, users, []primitive.ObjectID{id})
	if err != nil {
		s.db.logger.Warn("assignee name lookup failed", "error", err)
		return ""
	}
	return names[id]
}
