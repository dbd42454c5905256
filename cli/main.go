package main

import (
	"fmt"
	"os"

	"github.com/p1nant0m/ircpump/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(cmd.ExitCode(err))
	}
}
