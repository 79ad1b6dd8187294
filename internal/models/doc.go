// Package models defines the catalog records exchanged between the gateway, the navigation controller, and the views.
//
// The package contains plain value types only:
//   - [Movie] : a list entry as returned by every collection endpoint
//   - [MovieDetail] : a [Movie] extended with runtime, genres, and production companies
//   - [Genre] : a genre id/name pair
//   - [Profile] : the mocked account shown on the profile page
//
// Nothing here is persisted. Records are created from gateway responses and discarded
// with the view that displayed them.
package models
