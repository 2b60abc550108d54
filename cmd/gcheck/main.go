package main

import (
	"os"

	"github.com/mastercactapus/gcheck/cmd/gcheck/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
