package main

import "github.com/mcoot/haunt/internal/cli"

func main() {
	cli.Execute()
}
