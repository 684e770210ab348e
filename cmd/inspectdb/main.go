package main

import (
	"fmt"
	"os"

	"github.com/Kangyi02/DaoAI-assessment/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
