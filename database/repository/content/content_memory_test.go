package contentRepo

import (
	"context"
	"testing"

	"sitecms/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryContentRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryContentRepo()

	res, err := repo.Insert(ctx, models.Document{"question": "Q", "_id": "client-supplied"})
	require.NoError(t, err)
	require.True(t, res.Acknowledged)

	id, err := primitive.ObjectIDFromHex(res.InsertedID)
	require.NoError(t, err)

	doc, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Q", doc["question"])
	require.Equal(t, id, doc["_id"])

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	del, err := repo.DeleteByID(ctx, id)
	require.NoError(t, err)
	require.EqualValues(t, 1, del.DeletedCount)

	del, err = repo.DeleteByID(ctx, id)
	require.NoError(t, err)
	require.EqualValues(t, 0, del.DeletedCount)

	_, err = repo.GetByID(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)

	docs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, docs)
	require.NotNil(t, docs)
}
