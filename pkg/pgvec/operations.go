package pgvec

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

// Upsert inserts or replaces records by id as a single transaction: either
// every record in the call is applied or none is. Dimension mismatches are
// rejected with ErrValidation before any write reaches the server.
func (s *Store) Upsert(ctx context.Context, records []vectorstore.Record) error {
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

	db, err := s.session(ctx)
	if err != nil {
		return err
	}

	upsertSQL := fmt.Sprintf(`INSERT INTO %s (id, text, vector, metadata)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			text = EXCLUDED.text,
			vector = EXCLUDED.vector,
			metadata = EXCLUDED.metadata`, s.cfg.qualifiedTable())

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, r := range records {
			meta, err := marshalMetadata(r.Metadata)
			if err != nil {
				return fmt.Errorf("%w: record %q metadata: %v", vectorstore.ErrValidation, r.ID, err)
			}
			if err := tx.Exec(upsertSQL, r.ID, r.Text, pgvector.NewVector(r.Vector), meta).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return translateError(err)
	}

	s.logger.Debug("stored records", nil, map[string]interface{}{
		"count": len(records),
		"table": s.cfg.Connection.Table,
	})
	return nil
}

type searchRow struct {
	ID       string
	Text     string
	Metadata []byte
	Score    float32
}

// Search returns up to query.TopK results ordered descending by cosine
// similarity, ties broken by id. An empty table yields an empty slice.
func (s *Store) Search(ctx context.Context, query vectorstore.Query) ([]vectorstore.Result, error) {
	if query.TopK <= 0 {
		return nil, fmt.Errorf("%w: topK must be positive, got %d", vectorstore.ErrValidation, query.TopK)
	}
	if len(query.Vector) != s.cfg.Dimension {
		return nil, fmt.Errorf("%w: query vector has dimension %d, want %d",
			vectorstore.ErrValidation, len(query.Vector), s.cfg.Dimension)
	}

	db, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	where, filterArgs, err := buildFilterSQL(query.Filters)
	if err != nil {
		return nil, err
	}

	// Ascending distance equals descending similarity and lets the HNSW
	// index drive the scan.
	sql := fmt.Sprintf(`SELECT id, text, metadata, 1 - (vector <=> ?) AS score
		FROM %s%s
		ORDER BY vector <=> ? ASC, id
		LIMIT ?`, s.cfg.qualifiedTable(), where)

	vec := pgvector.NewVector(query.Vector)
	args := make([]interface{}, 0, len(filterArgs)+3)
	args = append(args, vec)
	args = append(args, filterArgs...)
	args = append(args, vec, query.TopK)

	var rows []searchRow
	if err := db.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}

	results := make([]vectorstore.Result, 0, len(rows))
	for _, row := range rows {
		results = append(results, vectorstore.Result{
			ID:       row.ID,
			Text:     row.Text,
			Metadata: unmarshalMetadata(row.Metadata),
			Score:    row.Score,
		})
	}
	return results, nil
}

// Delete removes the record with the given id. Deleting a missing id is not
// an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	db, err := s.session(ctx)
	if err != nil {
		return err
	}

	sql := fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.cfg.qualifiedTable())
	if err := db.Exec(sql, id).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	db, err := s.session(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	sql := fmt.Sprintf("SELECT count(*) FROM %s", s.cfg.qualifiedTable())
	if err := db.Raw(sql).Scan(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// Describe returns name, record count, and dimension of the backing table.
func (s *Store) Describe(ctx context.Context) (*vectorstore.Collection, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &vectorstore.Collection{
		Name:      s.cfg.Connection.Table,
		Count:     count,
		Dimension: s.cfg.Dimension,
	}, nil
}

func marshalMetadata(m map[string]any) (string, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalMetadata(data []byte) map[string]any {
	if len(data) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	if len(m) == 0 {
		return nil
	}
	return m
}
