// Package cli provides the interactive OpenMarket command-line client.
//
// It wires configuration, the local session store, the marketplace API
// client, the session manager and the view services behind a REPL. On
// start the saved session is restored and checked with the server in the
// background.
//
// Key features:
//   - Register (quick, full or company accounts), Login / Logout, whoami
//   - Browse and search listings, featured listings
//   - Listing detail and seller store views with product and seller ratings
//   - Create, edit and delete own listings
//   - Profile, settings, password change and (simulated) seller verification
//
// Opening a view cancels whatever the previous view was still loading.
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
