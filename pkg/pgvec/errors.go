package pgvec

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

// translateError converts driver-specific errors into the vectorstore
// sentinel taxonomy so the API layer can pick status codes without parsing
// messages. Errors already carrying a sentinel pass through unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range []error{
		vectorstore.ErrConfiguration,
		vectorstore.ErrConnection,
		vectorstore.ErrSchema,
		vectorstore.ErrValidation,
		vectorstore.ErrQuery,
		vectorstore.ErrResourceExhausted,
		vectorstore.ErrClosed,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	// The bounded pool surfaces checkout starvation as the caller's context
	// deadline firing while waiting for a free session.
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", vectorstore.ErrResourceExhausted, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code[:2] == "08": // connection exceptions
			return fmt.Errorf("%w: %v", vectorstore.ErrConnection, err)
		case pgErr.Code[:2] == "28": // invalid authorization
			return fmt.Errorf("%w: %v", vectorstore.ErrConnection, err)
		case pgErr.Code[:2] == "22": // data exceptions (bad vector literal etc.)
			return fmt.Errorf("%w: %v", vectorstore.ErrValidation, err)
		}
	}

	if errors.Is(err, gorm.ErrInvalidData) {
		return fmt.Errorf("%w: %v", vectorstore.ErrValidation, err)
	}

	return fmt.Errorf("%w: %v", vectorstore.ErrQuery, err)
}

// isDuplicateObject reports whether err is the server telling us the table,
// index, or extension we tried to create already exists. Exactly these
// failures are swallowed by EnsureSchema to stay idempotent under races.
func isDuplicateObject(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P07", // duplicate_table
			"42710", // duplicate_object
			"42P06", // duplicate_schema
			"23505": // unique_violation (pg_type race on CREATE EXTENSION)
			return true
		}
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
