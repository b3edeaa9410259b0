package main

import (
	"github.com/guipilot/guipilot/cmd"

	_ "github.com/guipilot/guipilot/internal/platform/darwin"
)

func main() {
	cmd.Execute()
}
