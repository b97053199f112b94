package qdrantvec

import (
	"context"
	"errors"
	"fmt"
	"testing"

	qdrant "github.com/qdrant/go-client/qdrant"
	gomock "go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

func newTestLogger(t *testing.T) *MockLogger {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockLogger := NewMockLogger(ctrl)

	mockLogger.EXPECT().Info(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	return mockLogger
}

func newMockedStore(t *testing.T) (*Store, *MockPointsClient) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	client := NewMockPointsClient(ctrl)

	store := &Store{
		client: client,
		cfg: Config{
			Host:       "localhost",
			Port:       6334,
			Collection: "vector_store",
			Dimension:  4,
		},
		logger: newTestLogger(t),
	}
	return store, client
}

func makeRecords(n int) []vectorstore.Record {
	records := make([]vectorstore.Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, vectorstore.Record{
			ID:     fmt.Sprintf("doc-%d", i),
			Text:   fmt.Sprintf("text %d", i),
			Vector: []float32{1, 0, 0, float32(i)},
		})
	}
	return records
}

func TestUpsertSendsWholeCallAsOneRequest(t *testing.T) {
	store, client := newMockedStore(t)
	records := makeRecords(300)

	var captured *qdrant.UpsertPoints
	client.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *qdrant.UpsertPoints) (*qdrant.UpdateResult, error) {
			captured = req
			return &qdrant.UpdateResult{}, nil
		}).Times(1)

	if err := store.Upsert(context.Background(), records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.CollectionName != "vector_store" {
		t.Errorf("unexpected collection %q", captured.CollectionName)
	}
	if len(captured.Points) != len(records) {
		t.Errorf("expected all %d records in one request, got %d", len(records), len(captured.Points))
	}
	if captured.Wait == nil || !*captured.Wait {
		t.Error("expected Wait=true so points are persisted before the call returns")
	}
}

func TestUpsertFailureLeavesNoPartialWrite(t *testing.T) {
	store, client := newMockedStore(t)
	records := makeRecords(300)

	// Exactly one request carries the whole call, so a failing call means no
	// subset of the records was acknowledged by the server.
	client.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(
		nil, status.Error(codes.Unavailable, "collection is locked")).Times(1)

	err := store.Upsert(context.Background(), records)
	if !errors.Is(err, vectorstore.ErrConnection) {
		t.Fatalf("expected ErrConnection, got %v", err)
	}
}

func TestUpsertRejectsBadRecordsBeforeAnyWrite(t *testing.T) {
	store, _ := newMockedStore(t)

	// No Upsert expectation: validation failures must never reach the client.
	records := makeRecords(10)
	records[7].Vector = []float32{1, 0}
	if err := store.Upsert(context.Background(), records); !errors.Is(err, vectorstore.ErrValidation) {
		t.Fatalf("expected ErrValidation for dimension mismatch, got %v", err)
	}

	records = makeRecords(3)
	records[1].ID = ""
	if err := store.Upsert(context.Background(), records); !errors.Is(err, vectorstore.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty id, got %v", err)
	}
}

func TestUpsertEmptyBatchIsNoop(t *testing.T) {
	store, _ := newMockedStore(t)

	if err := store.Upsert(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnsureSchemaCreatesCollectionOnce(t *testing.T) {
	store, client := newMockedStore(t)
	ctx := context.Background()

	gomock.InOrder(
		client.EXPECT().CollectionExists(gomock.Any(), "vector_store").Return(false, nil),
		client.EXPECT().CreateCollection(gomock.Any(), gomock.Any()).Return(nil),
		client.EXPECT().CollectionExists(gomock.Any(), "vector_store").Return(true, nil),
	)

	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("unexpected error on repeat: %v", err)
	}
}

func TestEnsureSchemaToleratesLostCreationRace(t *testing.T) {
	store, client := newMockedStore(t)

	gomock.InOrder(
		client.EXPECT().CollectionExists(gomock.Any(), "vector_store").Return(false, nil),
		client.EXPECT().CreateCollection(gomock.Any(), gomock.Any()).Return(
			status.Error(codes.AlreadyExists, "collection already exists")),
		client.EXPECT().CollectionExists(gomock.Any(), "vector_store").Return(true, nil),
	)

	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("expected a lost creation race to be tolerated, got %v", err)
	}
}

func TestSearchMapsScoredPoints(t *testing.T) {
	store, client := newMockedStore(t)

	client.EXPECT().Query(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error) {
			if req.Limit == nil || *req.Limit != 2 {
				t.Errorf("expected limit 2, got %v", req.Limit)
			}
			return []*qdrant.ScoredPoint{
				{
					Score: 0.97,
					Payload: qdrant.NewValueMap(map[string]any{
						payloadKeyID:   "doc-1",
						payloadKeyText: "alpha",
						"lang":         "en",
					}),
				},
			}, nil
		}).Times(1)

	results, err := store.Search(context.Background(), vectorstore.Query{
		Vector: []float32{1, 0, 0, 0},
		TopK:   2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if results[0].ID != "doc-1" || results[0].Text != "alpha" {
		t.Errorf("unexpected result %+v", results[0])
	}
	if results[0].Metadata["lang"] != "en" {
		t.Errorf("payload key not mapped into metadata: %+v", results[0].Metadata)
	}
}

func TestOperationsAfterCloseFail(t *testing.T) {
	store, client := newMockedStore(t)
	client.EXPECT().Close().Return(nil).Times(1)

	if err := store.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("second close must be a no-op, got %v", err)
	}
	if err := store.Upsert(context.Background(), makeRecords(1)); !errors.Is(err, vectorstore.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if _, err := store.Search(context.Background(), vectorstore.Query{Vector: []float32{1, 0, 0, 0}, TopK: 1}); !errors.Is(err, vectorstore.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
