package main

import "github.com/planforge/aps-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
