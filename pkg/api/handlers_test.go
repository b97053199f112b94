package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/arcadia-data/vektor/pkg/retrieval"
	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}
func (nopLogger) Fatal(string, error, ...map[string]interface{}) {}

func newTestServer(store vectorstore.Store, embedder retrieval.Embedder) *Server {
	r := retrieval.NewRetriever(retrieval.Config{DefaultK: 3}, store, embedder, nopLogger{})
	return NewServer(NewConfig(), r, nopLogger{}, nil, nil)
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestStatusNotConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newTestServer(nil, retrieval.NewMockEmbedder(ctrl))

	rec := doRequest(t, s, http.MethodGet, "/api/v1/vectorstore/status", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, statusNotConfigured, resp.Status)
}

func TestStatusConnected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := vectorstore.NewMockStore(ctrl)
	store.EXPECT().Ping(gomock.Any()).Return(nil)

	s := newTestServer(store, retrieval.NewMockEmbedder(ctrl))

	rec := doRequest(t, s, http.MethodGet, "/api/v1/vectorstore/status", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, statusConnected, resp.Status)
	assert.Empty(t, resp.Detail)
}

func TestStatusBackendError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := vectorstore.NewMockStore(ctrl)
	store.EXPECT().Ping(gomock.Any()).Return(vectorstore.ErrConnection)

	s := newTestServer(store, retrieval.NewMockEmbedder(ctrl))

	rec := doRequest(t, s, http.MethodGet, "/api/v1/vectorstore/status", nil)
	// The endpoint answers 200; the failure travels in the body.
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, statusError, resp.Status)
	assert.NotEmpty(t, resp.Detail)
}

func TestCollectionsWithoutBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newTestServer(nil, retrieval.NewMockEmbedder(ctrl))

	rec := doRequest(t, s, http.MethodGet, "/api/v1/vectorstore/collections", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCollections(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := vectorstore.NewMockStore(ctrl)
	store.EXPECT().Describe(gomock.Any()).Return(&vectorstore.Collection{
		Name:      "vector_store",
		Count:     42,
		Dimension: 1536,
	}, nil)

	s := newTestServer(store, retrieval.NewMockEmbedder(ctrl))

	rec := doRequest(t, s, http.MethodGet, "/api/v1/vectorstore/collections", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []collectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "vector_store", resp[0].Name)
	assert.Equal(t, int64(42), resp[0].DocumentCount)
	assert.Equal(t, 1536, resp[0].Dimension)
}

func TestCollectionsDescribeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := vectorstore.NewMockStore(ctrl)
	store.EXPECT().Describe(gomock.Any()).Return(nil, vectorstore.ErrQuery)

	s := newTestServer(store, retrieval.NewMockEmbedder(ctrl))

	rec := doRequest(t, s, http.MethodGet, "/api/v1/vectorstore/collections", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Detail)
}

func TestSearchEmptyQueryRejectedBeforeBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No expectations on either mock: the request must be rejected before
	// any backend call.
	store := vectorstore.NewMockStore(ctrl)
	embedder := retrieval.NewMockEmbedder(ctrl)

	s := newTestServer(store, embedder)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/vectorstore/search", searchRequest{Query: "   ", K: 3})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchInvalidBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newTestServer(vectorstore.NewMockStore(ctrl), retrieval.NewMockEmbedder(ctrl))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/vectorstore/search", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchWithoutBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newTestServer(nil, retrieval.NewMockEmbedder(ctrl))

	rec := doRequest(t, s, http.MethodPost, "/api/v1/vectorstore/search", searchRequest{Query: "q", K: 3})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSearch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := vectorstore.NewMockStore(ctrl)
	embedder := retrieval.NewMockEmbedder(ctrl)

	embedder.EXPECT().EmbedQuery(gomock.Any(), "what is hybrid search").Return([]float32{0.5}, nil)
	store.EXPECT().
		Search(gomock.Any(), vectorstore.Query{Vector: []float32{0.5}, TopK: 2}).
		Return([]vectorstore.Result{
			{ID: "a", Text: "first", Score: 0.9},
			{ID: "b", Text: "second", Score: 0.7},
		}, nil)

	s := newTestServer(store, embedder)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/vectorstore/search", searchRequest{Query: "what is hybrid search", K: 2})
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "a", resp.Results[0].ID)
	assert.Equal(t, "b", resp.Results[1].ID)
	assert.GreaterOrEqual(t, resp.LatencySeconds, 0.0)
}

func TestSearchWithFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := vectorstore.NewMockStore(ctrl)
	embedder := retrieval.NewMockEmbedder(ctrl)

	embedder.EXPECT().EmbedQuery(gomock.Any(), "q").Return([]float32{1}, nil)
	store.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, q vectorstore.Query) ([]vectorstore.Result, error) {
			require.NotNil(t, q.Filters)
			require.NotNil(t, q.Filters.Must)
			return nil, nil
		})

	s := newTestServer(store, embedder)

	body := map[string]any{
		"query": "q",
		"k":     3,
		"filter": map[string]any{
			"must": []map[string]any{
				{"field": "lang", "equalTo": "en"},
			},
		},
	}
	rec := doRequest(t, s, http.MethodPost, "/api/v1/vectorstore/search", body)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
}

func TestSearchValidationErrorMapsTo400(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := vectorstore.NewMockStore(ctrl)
	embedder := retrieval.NewMockEmbedder(ctrl)

	embedder.EXPECT().EmbedQuery(gomock.Any(), "q").Return([]float32{1}, nil)
	store.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, vectorstore.ErrValidation)

	s := newTestServer(store, embedder)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/vectorstore/search", searchRequest{Query: "q", K: 3})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchBackendErrorMapsTo500(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := vectorstore.NewMockStore(ctrl)
	embedder := retrieval.NewMockEmbedder(ctrl)

	embedder.EXPECT().EmbedQuery(gomock.Any(), "q").Return([]float32{1}, nil)
	store.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, vectorstore.ErrConnection)

	s := newTestServer(store, embedder)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/vectorstore/search", searchRequest{Query: "q", K: 3})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Detail, "search failed")
}
