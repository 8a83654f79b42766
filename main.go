package main

import (
	"github.com/RyanBlaney/sonido-mood/cmd"
)

func main() {
	cmd.Execute()
}
