// Package vectorstore provides a database-agnostic abstraction for vector
// record storage and similarity search.
//
// # Overview
//
// This package defines a common interface [Store] that can be implemented by
// different vector database adapters (pgvector, Qdrant, ...), allowing the
// retrieval layer to switch between backends without changing application code.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                    Retrieval Layer                          │
//	│      (uses vectorstore.Store - no DB-specific imports)      │
//	└──────────────────────────┬──────────────────────────────────┘
//	                           │
//	                           ▼
//	┌─────────────────────────────────────────────────────────────┐
//	│                    vectorstore.Store                        │
//	│          (common interface + DB-agnostic types)             │
//	└──────────────────────────┬──────────────────────────────────┘
//	                           │
//	             ┌─────────────┴─────────────┐
//	             ▼                           ▼
//	     ┌───────────────┐          ┌─────────────────┐
//	     │  pgvec.Store  │          │ qdrantvec.Store │
//	     │  (implements) │          │   (implements)  │
//	     └───────────────┘          └─────────────────┘
//
// # Usage
//
// Depend only on the interface:
//
//	type Retriever struct {
//	    store vectorstore.Store
//	}
//
//	func (r *Retriever) search(ctx context.Context, vec []float32, k int) ([]vectorstore.Result, error) {
//	    return r.store.Search(ctx, vectorstore.Query{Vector: vec, TopK: k})
//	}
//
// # Filters
//
// Metadata filtering uses structured predicates rather than opaque blob
// matching. A [FilterSet] groups conditions into Must (AND), Should (OR), and
// MustNot (NOT) clauses; each adapter compiles them to its native filter form:
//
//	filters := vectorstore.NewFilterSet(
//	    vectorstore.Must(vectorstore.NewMatch("lang", "en")),
//	    vectorstore.MustNot(vectorstore.NewMatch("draft", true)),
//	)
//
// # Errors
//
// All adapters surface failures through the sentinel errors in errors.go so
// callers can map them to transport-level responses with errors.Is.
package vectorstore
