// Package services implements the client's views on top of the remote
// gateway and the session: what to fetch for a screen, in which order, how
// partial failures degrade, and how local state follows a successful
// mutation.
//
// Every view runs inside a Scope. Closing the scope cancels its requests and
// turns later state updates into no-ops, so a view that was left never
// receives data meant for it.
package services
