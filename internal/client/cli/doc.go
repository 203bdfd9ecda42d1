// Package cli implements the onepass command line client.
//
// Every command is a one-shot gRPC call. The session token returned by
// login is kept in a file readable only by the user (see client.SessionFile)
// and sent with each later command until logout or expiry.
//
// Commands:
//   - register, login, logout, status, passwd, delete-account
//   - list, search, add, get, edit, rm
//   - check (a stored entry, or a password typed at the prompt)
package cli
