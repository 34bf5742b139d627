package main

import "os"

func main() {
	os.Exit(newCLI().run(os.Args[1:], os.Stdout, os.Stderr))
}
