// Command bikedash serves the bike sharing dashboard over HTTP and exports its report and
// charts headlessly.
package main

import (
	"fmt"
	"os"

	"github.com/iafilius/BikeSharingDashboard/src/logging"
)

func main() {
	defer logging.Sync()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
