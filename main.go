package main

import (
	"github.com/adamsbytes/rocinante-sub012/cmd"
)

func main() {
	cmd.Execute()
}
