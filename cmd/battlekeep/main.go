package main

import "github.com/battlekeep/battlekeep/internal/cli"

func main() {
	cli.Execute()
}
