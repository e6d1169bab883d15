package main

import "os"

// Version information set via ldflags at build time.
var version = "dev"

func main() {
	// fang has already printed the error.
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
