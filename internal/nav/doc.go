// Package nav owns page state for the catalog front-end.
//
// # Pages
//
// A [Controller] holds exactly one active [Page]. Views never switch pages themselves; they send an
// intent (Navigate, Select, Search, Back, SignIn, SignUp, SignOut) and render whatever state the
// controller commits.
//
// # Guard
//
// [Profile] requires a signed-in session. The check runs before the commit, so a signed-out request
// for Profile lands on [SignIn] and the resulting [Transition] is marked Redirected.
//
// # Targets
//
// Nav bar and footer links resolve through [Target]. "trending" lands on [Home] with the
// [ScrollToTrending] effect. "user" is an alias for "profile". Anything unrecognized goes Home.
//
// # Stale Responses
//
// A [Tracker] issues a [Ticket] per fetch. A response is applied only while its ticket is current,
// so selecting genre A then genre B shows B even when A's response arrives last.
package nav
