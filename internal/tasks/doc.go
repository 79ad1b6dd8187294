// Package tasks loads catalog sections and exports them, with real-time progress reporting.
//
// # Sections
//
// A section is addressed by key:
//   - trending, top-rated, popular : fixed lists
//   - genre:{id} : movies for one genre
//   - search:{query} : search results
//
// [Catalog.LoadSection] never fails. A gateway error, an unknown key, or an empty response all produce an
// empty [models.Section]; [SectionResult.Err] records the cause for logging, and [SectionResult.Degraded]
// separates failures from legitimately empty results.
//
// [Catalog.LoadHome] loads the three fixed lists and the genre list concurrently. One failing list does
// not affect the others.
//
// # Search
//
// [Catalog.Search] applies an optional genre filter and a [SortOrder] (relevance, rating, date) on top of
// the gateway search. [ResolveGenre] maps a loosely typed genre name to a genre using fuzzy matching.
//
// # Bulk Export
//
// [Catalog.BulkExport] fetches sections in order and hands them to a worker pool that writes them with
// the formatter package (json, csv, markdown, txt), then writes export_manifest.json.
//
// # Progress Reporting
//
// Progress updates are sent on a channel without blocking; a full or nil channel drops them.
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
package tasks
