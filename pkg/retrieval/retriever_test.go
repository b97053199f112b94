package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}
func (nopLogger) Fatal(string, error, ...map[string]interface{}) {}

func TestRetrieveEmbedsThenSearches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := vectorstore.NewMockStore(ctrl)
	embedder := NewMockEmbedder(ctrl)

	queryVec := []float32{0.1, 0.2}
	embedder.EXPECT().
		EmbedQuery(gomock.Any(), "what is a vector store").
		Return(queryVec, nil)

	store.EXPECT().
		Search(gomock.Any(), vectorstore.Query{Vector: queryVec, TopK: 2}).
		Return([]vectorstore.Result{
			{ID: "a", Text: "first", Score: 0.95, Metadata: map[string]any{"lang": "en"}},
			{ID: "b", Text: "second", Score: 0.80},
		}, nil)

	r := NewRetriever(Config{DefaultK: 3}, store, embedder, nopLogger{})

	docs, err := r.Retrieve(context.Background(), "what is a vector store", 2)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	// Store order is preserved.
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "first", docs[0].Text)
	assert.Equal(t, float32(0.95), docs[0].Score)
	assert.Equal(t, "en", docs[0].Metadata["lang"])
	assert.Equal(t, "b", docs[1].ID)
}

func TestRetrieveUsesDefaultK(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := vectorstore.NewMockStore(ctrl)
	embedder := NewMockEmbedder(ctrl)

	embedder.EXPECT().EmbedQuery(gomock.Any(), "q").Return([]float32{1}, nil)
	store.EXPECT().
		Search(gomock.Any(), vectorstore.Query{Vector: []float32{1}, TopK: 5}).
		Return(nil, nil)

	r := NewRetriever(Config{DefaultK: 5}, store, embedder, nopLogger{})

	docs, err := r.Retrieve(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRetrieveFilteredPassesFilters(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := vectorstore.NewMockStore(ctrl)
	embedder := NewMockEmbedder(ctrl)

	fs := vectorstore.NewFilterSet(
		vectorstore.Must(vectorstore.NewMatch("lang", "en")),
	)

	embedder.EXPECT().EmbedQuery(gomock.Any(), "q").Return([]float32{1}, nil)
	store.EXPECT().
		Search(gomock.Any(), vectorstore.Query{Vector: []float32{1}, TopK: 3, Filters: fs}).
		Return(nil, nil)

	r := NewRetriever(Config{DefaultK: 3}, store, embedder, nopLogger{})

	_, err := r.RetrieveFiltered(context.Background(), "q", 3, fs)
	require.NoError(t, err)
}

func TestRetrieveEmptyQueryRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := NewRetriever(Config{DefaultK: 3}, vectorstore.NewMockStore(ctrl), NewMockEmbedder(ctrl), nopLogger{})

	_, err := r.Retrieve(context.Background(), "", 3)
	assert.ErrorIs(t, err, vectorstore.ErrValidation)
}

func TestRetrieveEmbeddingErrorShortCircuits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := vectorstore.NewMockStore(ctrl)
	embedder := NewMockEmbedder(ctrl)

	embedder.EXPECT().EmbedQuery(gomock.Any(), "q").Return(nil, assert.AnError)
	// No Search expectation: the store must not be touched.

	r := NewRetriever(Config{DefaultK: 3}, store, embedder, nopLogger{})

	_, err := r.Retrieve(context.Background(), "q", 3)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRetrieveWithoutStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := NewRetriever(Config{DefaultK: 3}, nil, NewMockEmbedder(ctrl), nopLogger{})

	assert.False(t, r.Ready())
	_, err := r.Retrieve(context.Background(), "q", 3)
	assert.ErrorIs(t, err, vectorstore.ErrNotConfigured)
}

func TestRetrieveStoreErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := vectorstore.NewMockStore(ctrl)
	embedder := NewMockEmbedder(ctrl)

	embedder.EXPECT().EmbedQuery(gomock.Any(), "q").Return([]float32{1}, nil)
	store.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		Return(nil, vectorstore.ErrConnection)

	r := NewRetriever(Config{DefaultK: 3}, store, embedder, nopLogger{})

	_, err := r.Retrieve(context.Background(), "q", 3)
	assert.ErrorIs(t, err, vectorstore.ErrConnection)
}
