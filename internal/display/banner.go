package display

import (
	"fmt"
	"os"

	"github.com/backmassage/versereel/internal/logging"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if logging.Magenta != "" {
		fmt.Fprint(os.Stdout, "\033[1;95m")
	}
	fmt.Fprint(os.Stdout, `__     __                 ____           _
\ \   / /__ _ __ ___  ___|  _ \ ___  ___| |
 \ \ / / _ \ '__/ __|/ _ \ |_) / _ \/ _ \ |
  \ V /  __/ |  \__ \  __/  _ <  __/  __/ |
   \_/ \___|_|  |___/\___|_| \_\___|\___|_|
`)
	if logging.Magenta != "" {
		fmt.Fprintln(os.Stdout, logging.NC)
	}
}
