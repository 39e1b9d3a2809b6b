package main

import (
	"os"

	"github.com/thenoetrevino/taskdeck/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
