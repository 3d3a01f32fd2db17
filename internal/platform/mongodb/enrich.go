package mongodb

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// displayNameDoc is the projection used for display-name lookups.
type displayNameDoc struct {
	ID    primitive.ObjectID `bson:"_id"`
	Name  string             `bson:"name"`
	Email string             `bson:"email"`
}

// displayNames resolves owner IDs to display names in a single $in
// lookup against the users collection: the user's name, else their
// email, else absent from the map. This is best-effort enrichment; the
// caller must treat a lookup failure as "no names", never as a failure
// of the primary read.
func displayNames(
	ctx context.Context,
	users *mongo.Collection,
	ids []primitive.ObjectID,
) (map[primitive.ObjectID]string, error) {
	names := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1, "email": 1})
	cur, err := users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	for cur.Next(ctx) {
		var doc displayNameDoc
		if err := cur.Decode(&doc); err != nil {
			continue
		}
		if name := strings.TrimSpace(doc.Name); name != "" {
			names[doc.ID] = name
		} else if email := strings.TrimSpace(doc.Email); email != "" {
			names[doc.ID] = email
		}
	}
	return names, cur.Err()
}

// dedupe returns the distinct ObjectIDs from the given slice.
func dedupe(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
