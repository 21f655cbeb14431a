// Package cli implements the interactive letterpal client: a small REPL over
// the session and ledger services. It owns terminal I/O only; all state
// changes go through the services.
package cli
