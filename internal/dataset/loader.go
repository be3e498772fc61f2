package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/scholarstack/paper-catalog-service/internal/domain"
	"github.com/scholarstack/paper-catalog-service/internal/observability"
)

// nestedDocument is the venue->year->papers document shape.
// Year keys arrive as strings because JSON object keys are strings; the
// authoritative year is the one on each paper record.
type nestedDocument struct {
	Total             int                                   `json:"total"`
	PapersByVenueYear map[string]map[string][]domain.Paper `json:"papers_by_venue_year"`
}

// Result summarizes a completed load.
type Result struct {
	// Papers is the flat collection, in source order (documents concatenate
	// in configuration order; leaf order within a nested document is
	// unspecified).
	Papers []domain.Paper

	// SourcesLoaded is the number of documents that contributed records.
	SourcesLoaded int

	// SourcesFailed is the number of documents that failed to fetch or parse.
	SourcesFailed int
}

// Loader fetches the configured dataset documents and flattens them into a
// single collection. A failing source contributes zero records and never
// aborts the remaining sources; the load itself has no fatal error path.
type Loader struct {
	fetcher *Fetcher
	sources []string
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// NewLoader creates a loader over the given sources.
// metrics may be nil, in which case load counters are not recorded.
func NewLoader(fetcher *Fetcher, sources []string, logger zerolog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{
		fetcher: fetcher,
		sources: sources,
		logger:  logger.With().Str("component", "dataset-loader").Logger(),
		metrics: metrics,
	}
}

// Load fetches every configured source once and concatenates the extracted
// records. Duplicates across sources are preserved as-is; the collection is
// append-only during the load and must be treated as immutable afterwards.
func (l *Loader) Load(ctx context.Context) Result {
	var res Result

	for _, source := range l.sources {
		srcLog := observability.WithSourceContext(l.logger, source)

		papers, err := l.loadSource(ctx, source)
		if err != nil {
			res.SourcesFailed++
			if l.metrics != nil {
				l.metrics.RecordDatasetFailed()
			}
			srcLog.Error().
				Err(domain.NewSourceError(source, err)).
				Msg("dataset source skipped")
			continue
		}

		res.Papers = append(res.Papers, papers...)
		res.SourcesLoaded++
		if l.metrics != nil {
			l.metrics.RecordDatasetLoaded(len(papers))
		}
		srcLog.Info().
			Int("papers", len(papers)).
			Msg("dataset source loaded")
	}

	l.logger.Info().
		Int("papers", len(res.Papers)).
		Int("sources_loaded", res.SourcesLoaded).
		Int("sources_failed", res.SourcesFailed).
		Msg("dataset load complete")

	return res
}

// loadSource fetches and decodes a single document.
func (l *Loader) loadSource(ctx context.Context, source string) ([]domain.Paper, error) {
	raw, err := l.fetcher.Fetch(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	return ParseDocument(raw)
}

// ParseDocument decodes one dataset document, accepting either supported
// shape transparently: a bare JSON array of papers, or an object with a
// papers_by_venue_year venue->year->papers mapping. The shape is detected at
// this boundary and never leaks past it.
func ParseDocument(raw []byte) ([]domain.Paper, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	switch trimmed[0] {
	case '[':
		var papers []domain.Paper
		if err := json.Unmarshal(trimmed, &papers); err != nil {
			return nil, fmt.Errorf("parse flat document: %w", err)
		}
		return papers, nil

	case '{':
		var doc nestedDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("parse nested document: %w", err)
		}
		var papers []domain.Paper
		for _, years := range doc.PapersByVenueYear {
			for _, leaf := range years {
				papers = append(papers, leaf...)
			}
		}
		return papers, nil

	default:
		return nil, fmt.Errorf("unrecognized document shape (leading byte %q)", trimmed[0])
	}
}
