package main

import (
	"os"

	"github.com/monthgrid/monthgrid/internal/monthgrid"
)

func main() {
	os.Exit(monthgrid.Main())
}
