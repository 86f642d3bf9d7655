package main

import (
	"github.com/typerace/typerace-go/internal/cli"
)

func main() {
	cli.Execute()
}
