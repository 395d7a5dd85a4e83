package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"

	"github.com/lehigh-university-libraries/tablesep/cmd"
	"github.com/lehigh-university-libraries/tablesep/internal/utils"
)

func main() {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("No .env file found")
	} else if err != nil {
		utils.ExitOnError("Error loading .env file", err)
	}

	if err := fang.Execute(context.Background(), cmd.RootCmd); err != nil {
		os.Exit(1)
	}
}
