// Package session owns the client's authentication state.
//
// A Manager starts in StateInitializing. Start restores a persisted session
// optimistically and confirms it with the server in the background; any
// failure of that check signs the user out. Login, Register and Logout
// replace the session and invalidate checks that are still in flight, so a
// late answer never overwrites a newer session.
//
// The Manager implements client.TokenSource and is meant to be plugged into
// the HTTP client it authenticates through.
package session
