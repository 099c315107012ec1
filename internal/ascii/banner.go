// Package ascii prints the seedmixer startup banner. Banner failures are
// cosmetic and are swallowed rather than propagated to main, per the
// tool's error-handling policy.
package ascii

import "fmt"

const banner = `
  ___ ___ ___ ___  __  __ _____  _____ ___
 / __| __| __|   \|  \/  |_ _\ \/ / __| _ \
 \__ \ _|| _|| |) | |\/| || | >  <| _||   /
 |___/___|___|___/|_|  |_|___/_/\_\___|_|_\
`

// Print writes the banner to stdout. Any write failure is discarded; a
// missing banner is never a reason to abort the CLI.
func Print() {
	_, _ = fmt.Println(banner)
}
