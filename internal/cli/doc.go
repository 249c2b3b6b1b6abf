// Package cli provides the interactive dbkeeper console.
//
// Each cycle prints the menu for the current role, reads one line, and hands
// it to the Dispatcher. The Dispatcher parses the line once into a Command
// and invokes exactly one handler, which calls into the record store
// (package storage) or the session (package session).
//
// Commands are numeric choices followed by an optional argument:
//
//	1               quit
//	2 <user|admin>  switch user; admin asks for the password
//	3 <name|*>      query records by exact name, * lists all
//	4 <name>        insert a record (admin only)
//	5               wipe the store after confirmation (admin only)
//
// Privileged commands issued by a plain user are ignored without a console
// message; the attempt is recorded in the log.
//
// The console is started via App.Run(ctx), which blocks until the user quits,
// input ends, or a fatal error occurs.
package cli
