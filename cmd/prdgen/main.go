package main

import "github.com/jamie-anson/prdgen/internal/cli"

func main() {
	cli.Execute()
}
