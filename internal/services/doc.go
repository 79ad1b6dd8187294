// Package services defines the [Gateway] interface for the movie catalog and implements it for TMDb and for a bundled in-memory catalog.
//
// # Gateway Interface
//
// Views and the CLI consume the catalog through a single read-only abstraction, so the data source can be
// swapped without touching navigation or rendering.
//
// # TMDb Implementation
//
// [TMDbService] issues HTTP GETs against https://api.themoviedb.org/3. Credentials come from configuration:
//   - api_key : appended as a query parameter
//   - access_token : attached as a bearer token by an [oauth2.Transport] over a static token source
//
// Every request carries a fresh X-Request-ID which is logged with the endpoint, status, and latency.
//
// # Bundled Catalog
//
// [MockService] serves a fixed set of eight movies and nineteen genres. Search filters titles case-insensitively
// by substring. [NewGateway] falls back to it when no TMDb credentials are configured.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [*NetworkError] : non-success status or transport failure, matches [shared.ErrNetwork]
//   - [shared.ErrEmptyQuery] : blank search query
//   - [shared.ErrMovieNotFound] : unknown id in the bundled catalog
//
// No call is retried or cached. Callers decide how to degrade (see the tasks package).
//
// # Raw Access
//
// [APIService] performs unparsed GETs for debugging (`bingeverse api get /movie/550`).
package services
