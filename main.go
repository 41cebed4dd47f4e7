package main

import (
	"github.com/crisprtk/cctk/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
