package qdrantvec

import (
	"context"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// PointsClient is the slice of the Qdrant client surface the store uses.
// *qdrant.Client satisfies it; tests substitute a mock.
//
//go:generate mockgen -source=client.go -destination=mock_client.go -package=qdrantvec
type PointsClient interface {
	HealthCheck(ctx context.Context) (*qdrant.HealthCheckReply, error)
	CollectionExists(ctx context.Context, collectionName string) (bool, error)
	CreateCollection(ctx context.Context, request *qdrant.CreateCollection) error
	Upsert(ctx context.Context, request *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	Query(ctx context.Context, request *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
	Delete(ctx context.Context, request *qdrant.DeletePoints) (*qdrant.UpdateResult, error)
	Count(ctx context.Context, request *qdrant.CountPoints) (uint64, error)
	Close() error
}
