// Package services implements the core orchestration logic.
//
// Services implement driving port interfaces and depend only on driven
// port interfaces. They contain the ingest/index/search pipeline and the
// read-side analytics, but no infrastructure code.
package services
