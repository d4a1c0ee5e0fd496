package cmd

import (
	"fmt"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// Progress and results go to stdout through these helpers; diagnostics go
// to the zap logger on stderr.
//
// Icon semantics:
//   ✓  stage finished / accuracy reported
//   ○  skipped
//   ~  progress of a running stage

// printSection prints a top-level section header, e.g. "=== Results ===".
func printSection(title string) {
	fmt.Printf("\n=== %s ===\n", title)
}

// printLine prints "  icon  msg", or "  icon  [name] msg" when name is set.
func printLine(icon, name, msg string) {
	if name == "" {
		fmt.Printf("  %s  %s\n", icon, msg)
		return
	}
	fmt.Printf("  %s  [%s] %s\n", icon, name, msg)
}

func printOK(name, msg string)   { printLine("✓", name, msg) }
func printSkip(name, msg string) { printLine("○", name, msg) }
func printInfo(name, msg string) { printLine("~", name, msg) }
