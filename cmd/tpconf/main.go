package main

import (
	"fmt"
	"os"
)

func main() {
	app := newApp(os.Stderr)

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %s\n", err.Error())
		os.Exit(exitCode(err))
	}
}
