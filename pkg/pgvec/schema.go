package pgvec

import (
	"context"
	"fmt"

	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

// EnsureSchema provisions the vector table and its cosine index if absent.
//
// The check-then-create is not atomic against concurrent callers; a racing
// process may win the CREATE. The server's "already exists" failures
// (and only those) are swallowed, so concurrent EnsureSchema calls all
// succeed and exactly one table exists afterward.
func (s *Store) EnsureSchema(ctx context.Context) error {
	db, err := s.session(ctx)
	if err != nil {
		return err
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		if !isDuplicateObject(err) {
			return fmt.Errorf("%w: enabling pgvector extension: %v", vectorstore.ErrSchema, err)
		}
	}

	var exists *string
	regclass := fmt.Sprintf("%s.%s", s.cfg.Connection.Schema, s.cfg.Connection.Table)
	if err := db.Raw("SELECT to_regclass(?)::text", regclass).Scan(&exists).Error; err != nil {
		return fmt.Errorf("%w: checking table existence: %v", vectorstore.ErrSchema, err)
	}
	if exists != nil {
		s.logger.Debug("using existing vector table", nil, map[string]interface{}{
			"table": regclass,
		})
		return nil
	}

	s.logger.Info("creating vector table", nil, map[string]interface{}{
		"table":     regclass,
		"dimension": s.cfg.Dimension,
	})

	createTable := fmt.Sprintf(`CREATE TABLE %s (
		id       text PRIMARY KEY,
		text     text NOT NULL,
		vector   vector(%d) NOT NULL,
		metadata jsonb
	)`, s.cfg.qualifiedTable(), s.cfg.Dimension)

	if err := db.Exec(createTable).Error; err != nil {
		if isDuplicateObject(err) {
			// Lost the race; the winner's table serves us.
			s.logger.Debug("vector table created concurrently", nil, nil)
			return nil
		}
		return fmt.Errorf("%w: creating table %s: %v", vectorstore.ErrSchema, regclass, err)
	}

	createIndex := fmt.Sprintf(
		"CREATE INDEX %q ON %s USING hnsw (vector vector_cosine_ops)",
		s.cfg.Connection.Table+"_vector_idx",
		s.cfg.qualifiedTable(),
	)

	if err := db.Exec(createIndex).Error; err != nil {
		if isDuplicateObject(err) {
			return nil
		}
		return fmt.Errorf("%w: creating vector index: %v", vectorstore.ErrSchema, err)
	}

	s.logger.Info("created vector table and index", nil, map[string]interface{}{
		"table": regclass,
	})
	return nil
}
