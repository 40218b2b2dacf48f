package main

import (
	"os"

	"instrumatch-affiliate/cmd/affiliatectl/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
