// Package observability provides logging and metrics support for the paper
// catalog service.
//
// # Overview
//
// The observability package provides:
//
//   - Structured logging with zerolog
//   - Prometheus metrics for dataset loading, catalog queries, browse
//     sessions, and formula rendering
//
// # Logging
//
// Create a logger from configuration:
//
//	cfg := observability.LoggingConfig{
//	    Level:     "info",
//	    Format:    "json",
//	    Output:    "stdout",
//	    AddSource: true,
//	}
//
//	logger := observability.NewLogger(cfg)
//	logger.Info().Int("papers", n).Msg("dataset loaded")
//
// Add session context to a logger:
//
//	logger = observability.WithSessionContext(logger, sessionID)
//
// # Metrics
//
// Initialize metrics:
//
//	metrics := observability.NewMetrics("paper_catalog")
//
// Record metrics:
//
//	metrics.RecordDatasetLoaded(42)
//	metrics.RecordSearch("query", 17, 0.002)
//
// # Standard Fields
//
// Common fields used across the service:
//
//   - request_id: HTTP request identifier
//   - session_id: Browse session identifier
//   - source: Dataset document source (URL or file path)
//   - query: Free-text search query
//
// # Thread Safety
//
// All components are safe for concurrent use from multiple goroutines.
package observability
