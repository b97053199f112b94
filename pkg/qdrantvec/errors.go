package qdrantvec

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

// translateError maps gRPC transport failures onto the vectorstore sentinel
// hierarchy so callers never have to import grpc/status themselves.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, vectorstore.ErrClosed) ||
		errors.Is(err, vectorstore.ErrValidation) ||
		errors.Is(err, vectorstore.ErrConnection) ||
		errors.Is(err, vectorstore.ErrSchema) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", vectorstore.ErrResourceExhausted, err)
	}

	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unavailable, codes.Unauthenticated, codes.PermissionDenied:
			return fmt.Errorf("%w: %v", vectorstore.ErrConnection, err)
		case codes.InvalidArgument:
			return fmt.Errorf("%w: %v", vectorstore.ErrValidation, err)
		case codes.ResourceExhausted, codes.DeadlineExceeded:
			return fmt.Errorf("%w: %v", vectorstore.ErrResourceExhausted, err)
		}
	}
	return fmt.Errorf("%w: %v", vectorstore.ErrQuery, err)
}
