package main

import (
	"github.com/glottologist/seedmixer/internal/ascii"
	"github.com/glottologist/seedmixer/internal/cli"
)

func main() {
	ascii.Print()
	cli.Initialize()
	cli.Execute()
}
