package main

import (
	"os"

	"github.com/spectriclabs/glmapviz/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		os.Exit(1)
	}
}
