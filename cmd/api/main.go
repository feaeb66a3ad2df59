package main

import (
	"os"

	"github.com/pixelsaas/media-api/internal/app"
)

func main() {
	code := app.Run("api", run)
	os.Exit(code)
}
