// Package cli provides the interactive operator console for the clinic site.
//
// It drives the same AuthService and TeamService the site server uses, so
// an operator can log in against the CMS, inspect the credential state and
// browse or refresh the cached team collection.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits
// or stdin closes. See runREPL for the command set.
package cli
