// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: diag.go — search-lifecycle diagnostic reporting
//
// Purpose:
//   - Reports the checkpoints a query passes through: knowledge-base
//     bootstrap, query parsing, and the engine's own termination reason.
//   - Writes straight to stderr, skipping the log package's mutex and
//     timestamp formatting — this is a command-line driver's status
//     line, not a service's structured log stream.
//
// ⚠️ Never invoke from the engine's tick loop or the expander — only from
// bootstrap, query parsing, and termination reporting.
// ─────────────────────────────────────────────────────────────────────────────

package diag

import (
	"fmt"
	"os"
)

// Stage reports a named checkpoint in the bootstrap/search/report pipeline
// (e.g. "INIT", "READY", "RESULT") along with a short detail string.
func Stage(name, detail string) {
	os.Stderr.WriteString(name + ": " + detail + "\n")
}

// Abort reports a fatal error tagged with the stage it occurred in and
// returns it unchanged, so a caller can report and propagate in the same
// expression without a separate log statement above the return:
//
//	graph, err := loadGraph(path)
//	if err != nil {
//		diag.Abort("GRAPH_ERROR", err)
//		os.Exit(1)
//	}
//
// A nil err is a no-op and reports nothing.
func Abort(stage string, err error) error {
	if err == nil {
		return nil
	}
	os.Stderr.WriteString(stage + ": " + err.Error() + "\n")
	return err
}

// Termination reports why SynSearch stopped, honoring the caller's own
// Silent option rather than pushing an if-statement onto every call site.
func Termination(term fmt.Stringer, silent bool) {
	if silent {
		return
	}
	os.Stderr.WriteString("SYNSEARCH: " + term.String() + "\n")
}
