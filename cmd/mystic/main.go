package main

import (
	"os"
)

var exit = os.Exit

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		exit(1)
	}
}
