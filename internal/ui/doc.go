// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// One view is drawn per [nav.Page]:
//  1. Home : Trending Now, Top Rated, Popular, and a By Genre row with a genre picker
//  2. Detail : runtime, rating, genres, production companies and overview of one movie
//  3. Search : results with a sort order and genre filter
//  4. Genres : genre sidebar with a grid or list of that genre's movies
//  5. Profile : placeholder account with watchlist, ratings and favorites tabs
//  6. SignIn / SignUp : forms with inline validation errors
//
// The (view) [Model] never changes pages itself. Key presses become intents on the [nav.Controller], which
// applies the session guard and commits; the model observes each committed transition and issues the
// fetch the new page needs as a [tea.Cmd]. Every fetch carries a [nav.Ticket], and a response whose ticket
// is no longer current (the user moved on) is dropped, so the last selection always wins.
//
// Failed and empty sections both render "No movies found".
package ui
