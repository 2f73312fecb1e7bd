package main

import (
	"io"
	"os"
)

const version = "0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run executes one invocation and reports a failure on stderr.
func run(args []string, stdout, stderr io.Writer) error {
	a := newApp()
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		a.report(stderr, err)
		return err
	}
	return nil
}
