package qdrantvec

import (
	"context"
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

// EnsureSchema provisions the collection with cosine distance if absent.
// Safe to call repeatedly; a collection created concurrently by another
// process is detected and reused.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if err := s.guard(); err != nil {
		return err
	}

	exists, err := s.client.CollectionExists(ctx, s.cfg.Collection)
	if err != nil {
		return fmt.Errorf("%w: checking collection existence: %v", vectorstore.ErrSchema, err)
	}
	if exists {
		s.logger.Debug("using existing collection", nil, map[string]interface{}{
			"collection": s.cfg.Collection,
		})
		return nil
	}

	s.logger.Info("creating collection", nil, map[string]interface{}{
		"collection": s.cfg.Collection,
		"dimension":  s.cfg.Dimension,
	})

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.cfg.Collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(s.cfg.Dimension),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		// Lost the race; the winner's collection serves us.
		if exists, checkErr := s.client.CollectionExists(ctx, s.cfg.Collection); checkErr == nil && exists {
			s.logger.Debug("collection created concurrently", nil, nil)
			return nil
		}
		return fmt.Errorf("%w: creating collection %s: %v", vectorstore.ErrSchema, s.cfg.Collection, err)
	}
	return nil
}

// Upsert inserts or replaces records by id. The whole call travels as a
// single Upsert request with Wait=true: Qdrant applies it as one operation
// and the points are persisted before the call returns, so an error means
// none of the records from this call were acknowledged. Empty ids and
// dimension mismatches are rejected with ErrValidation before any write
// reaches the server.
func (s *Store) Upsert(ctx context.Context, records []vectorstore.Record) error {
	if err := s.guard(); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	for i, r := range records {
		if r.ID == "" {
			return fmt.Errorf("%w: record [%d] has empty id", vectorstore.ErrValidation, i)
		}
		if len(r.Vector) != s.cfg.Dimension {
			return fmt.Errorf("%w: record %q vector has dimension %d, want %d",
				vectorstore.ErrValidation, r.ID, len(r.Vector), s.cfg.Dimension)
		}
	}

	points := make([]*qdrant.PointStruct, 0, len(records))
	for _, r := range records {
		payload, err := buildPayload(r)
		if err != nil {
			return err
		}
		points = append(points, &qdrant.PointStruct{
			Id:      pointID(r.ID),
			Vectors: qdrant.NewVectors(r.Vector...),
			Payload: payload,
		})
	}

	wait := true
	if _, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.cfg.Collection,
		Points:         points,
		Wait:           &wait,
	}); err != nil {
		return translateError(err)
	}

	s.logger.Debug("stored records", nil, map[string]interface{}{
		"count":      len(records),
		"collection": s.cfg.Collection,
	})
	return nil
}

// Search returns up to query.TopK results ordered descending by cosine
// similarity. An empty collection yields an empty slice.
func (s *Store) Search(ctx context.Context, query vectorstore.Query) ([]vectorstore.Result, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	if query.TopK <= 0 {
		return nil, fmt.Errorf("%w: topK must be positive, got %d", vectorstore.ErrValidation, query.TopK)
	}
	if len(query.Vector) != s.cfg.Dimension {
		return nil, fmt.Errorf("%w: query vector has dimension %d, want %d",
			vectorstore.ErrValidation, len(query.Vector), s.cfg.Dimension)
	}

	filter, err := buildFilter(query.Filters)
	if err != nil {
		return nil, err
	}

	limit := uint64(query.TopK)
	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.cfg.Collection,
		Query:          qdrant.NewQuery(query.Vector...),
		Filter:         filter,
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, translateError(err)
	}

	results := make([]vectorstore.Result, 0, len(points))
	for _, p := range points {
		results = append(results, extractResult(p))
	}
	return results, nil
}

// Delete removes the record with the given id. Deleting a missing id is not
// an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}

	wait := true
	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: s.cfg.Collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{Ids: []*qdrant.PointId{pointID(id)}},
			},
		},
		Wait: &wait,
	})
	if err != nil {
		return translateError(err)
	}
	return nil
}

// Count returns the exact number of stored records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	if err := s.guard(); err != nil {
		return 0, err
	}

	exact := true
	count, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: s.cfg.Collection,
		Exact:          &exact,
	})
	if err != nil {
		return 0, translateError(err)
	}
	return int64(count), nil
}

// Describe returns name, record count, and dimension of the collection.
func (s *Store) Describe(ctx context.Context) (*vectorstore.Collection, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &vectorstore.Collection{
		Name:      s.cfg.Collection,
		Count:     count,
		Dimension: s.cfg.Dimension,
	}, nil
}
