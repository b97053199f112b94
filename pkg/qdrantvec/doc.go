// Package qdrantvec implements vectorstore.Store on a Qdrant collection.
//
// It is the gRPC-backed alternative to the pgvec driver: one collection holds
// the records, the document text travels in the payload under the "text" key,
// and the remaining payload keys carry the record metadata. Collections are
// provisioned with cosine distance, so scores come back as cosine similarity
// directly.
//
// Filter sets translate structurally onto Qdrant's native filter model
// (must / should / must_not), so the same vectorstore.FilterSet works
// unchanged against either driver.
package qdrantvec
