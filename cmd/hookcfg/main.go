// hookcfg - Lint and hook configuration toolkit
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/hookcfg

package main

import (
	"os"

	"github.com/ariel-frischer/hookcfg/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
