// Package pgvec implements vectorstore.Store on PostgreSQL with the pgvector
// extension.
//
// One Store owns one gorm session backed by a bounded database/sql pool.
// Records live in a single provisioned table:
//
//	CREATE TABLE <schema>.<table> (
//	    id       text PRIMARY KEY,
//	    text     text NOT NULL,
//	    vector   vector(<dim>) NOT NULL,
//	    metadata jsonb
//	)
//
// with an HNSW cosine index on vector. Similarity search scores with
// 1 - (vector <=> query), so 1.0 means identical direction.
//
// Provisioning is idempotent under races: two processes creating the same
// table concurrently both succeed, "already exists" failures from the server
// are swallowed. All other failure modes surface through the vectorstore
// sentinel errors.
package pgvec
