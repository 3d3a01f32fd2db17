package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/store"
)

func TestClientFilterEmptyQuery(t *testing.T) {
	assert.Equal(t, bson.M{}, clientFilter(store.ClientQuery{}))
}

func TestClientFilterOwnerAndStatus(t *testing.T) {
	oid := primitive.NewObjectID()
	filter := clientFilter(store.ClientQuery{
		ManagerID: oid.Hex(),
		Status:    domain.ClientStatusLead,
	})

	assert.Equal(t, oid, filter["managerId"])
	assert.Equal(t, "lead", filter["status"])
}

func TestClientFilterMalformedOwnerMatchesNothing(t *testing.T) {
	filter := clientFilter(store.ClientQuery{ManagerID: "not-a-hex-id"})
	assert.Equal(t, neverMatch, filter)
}

func TestClientFilterSearchEscapesRegexMeta(t *testing.T) {
	filter := clientFilter(store.ClientQuery{Search: "a.b+c"})

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 3)

	first, ok := or[0].(bson.M)
	require.True(t, ok)
	pattern, ok := first["name"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, `a\.b\+c`, pattern.Pattern)
	assert.Equal(t, "i", pattern.Options)
}

func TestTaskFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, taskFilter(store.TaskQuery{}))

	oid := primitive.NewObjectID()
	filter := taskFilter(store.TaskQuery{
		AssigneeID: oid.Hex(),
		Status:     domain.TaskStatusCompleted,
	})
	assert.Equal(t, oid, filter["assigneeId"])
	assert.Equal(t, "completed", filter["status"])

	assert.Equal(t, neverMatch, taskFilter(store.TaskQuery{AssigneeID: "zzz"}))
}

func TestDedupe(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	out := dedupe([]primitive.ObjectID{a, b, a, a, b})
	assert.Equal(t, []primitive.ObjectID{a, b}, out)

	assert.Empty(t, dedupe(nil))
}

func TestClientDocToDomain(t *testing.T) {
	oid := primitive.NewObjectID()
	manager := primitive.NewObjectID()
	doc := clientDoc{
		ID:        oid,
		Name:      "Acme",
		Status:    "active",
		ManagerID: manager,
	}

	c := doc.toDomain("Jordan")
	assert.Equal(t, oid.Hex(), c.ID)
	assert.Equal(t, manager.Hex(), c.ManagerID)
	assert.Equal(t, "Jordan", c.ManagerName)
	assert.Equal(t, domain.ClientStatusActive, c.Status)
}
