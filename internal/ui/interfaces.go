package ui

import (
	"context"

	"github.com/Cyclone1070/shellfs/internal/dialect"
	"github.com/Cyclone1070/shellfs/internal/models"
)

// browsable is the slice of the shell filesystem the browser needs.
type browsable interface {
	Info(ctx context.Context, path string) (models.PathEntry, error)
	Ls(ctx context.Context, path string) ([]models.PathEntry, error)
	Dialect() *dialect.Dialect
}
