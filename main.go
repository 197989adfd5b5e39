package main

import (
	"os"

	"github.com/fabiomatricardi/cm-log-system/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
