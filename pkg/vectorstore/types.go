package vectorstore

// Record is the stored unit: an author-assigned id, the raw text, its
// embedding, and an opaque string-keyed metadata map.
type Record struct {
	// ID is the unique key; upserting an existing ID replaces the record.
	ID string `json:"id"`

	// Text is the document body the vector was computed from.
	Text string `json:"text"`

	// Vector is the embedding. Its length must equal the store's configured
	// dimension; adapters reject mismatches before any write reaches the store.
	Vector []float32 `json:"vector"`

	// Metadata is pass-through structured data. Adapters persist it as a
	// serialized blob and only interpret it for filtering.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Query is a single similarity search.
type Query struct {
	// Vector is the query embedding, same fixed length as stored records.
	Vector []float32 `json:"vector"`

	// TopK is the maximum number of results to return.
	TopK int `json:"topK"`

	// Filters is optional metadata filtering (AND/OR/NOT logic).
	Filters *FilterSet `json:"filters,omitempty"`
}

// Result is one search hit. Results are ordered descending by Score; ties are
// broken by record id so ordering is stable within one query execution.
type Result struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`

	// Score is cosine similarity, nominally in [-1, 1], 1 = identical direction.
	Score float32 `json:"score"`
}

// Collection describes the provisioned table/collection backing a store.
type Collection struct {
	// Name is the table or collection name.
	Name string `json:"name"`

	// Count is the number of stored records.
	Count int64 `json:"documentCount"`

	// Dimension is the fixed embedding length of the collection.
	Dimension int `json:"dimension"`
}
