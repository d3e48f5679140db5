// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - MetadataStore: Document and query-log persistence plus aggregation
//   - EmbeddingService: Generates vector embeddings from text
//   - VectorIndex: Stores chunk vectors and answers top-k similarity queries
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
