// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"

	"github.com/ratt/validator/internal/app"
	cardsDomain "github.com/ratt/validator/internal/cards/domain"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(migrate *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := migrate.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

// writeCardText outputs a card in human-readable text format.
func writeCardText(card *cardsDomain.Card, writer io.Writer) {
	_, _ = fmt.Fprintf(writer, "UID:        %s\n", card.UID)
	_, _ = fmt.Fprintf(writer, "Status:     %s\n", card.Status)
	_, _ = fmt.Fprintf(writer, "Credits:    %d\n", card.Credits)
	if card.ExpirationDate != nil {
		_, _ = fmt.Fprintf(writer, "Expires:    %s\n", card.ExpirationDate.Format(time.DateOnly))
	} else {
		_, _ = fmt.Fprintln(writer, "Expires:    never")
	}
	if card.LastScanAt != nil {
		_, _ = fmt.Fprintf(writer, "Last scan:  %s\n", card.LastScanAt.Format(time.RFC3339))
	}
	if card.Name != "" {
		_, _ = fmt.Fprintf(writer, "Name:       %s\n", card.Name)
	}
}

// writeCardJSON outputs a card in JSON format for machine consumption.
func writeCardJSON(card *cardsDomain.Card, writer io.Writer) {
	result := map[string]any{
		"uid":     card.UID,
		"status":  string(card.Status),
		"credits": card.Credits,
		"name":    card.Name,
	}
	if card.ExpirationDate != nil {
		result["expiration_date"] = card.ExpirationDate.Format(time.DateOnly)
	}
	if card.LastScanAt != nil {
		result["last_scan_at"] = card.LastScanAt.Format(time.RFC3339)
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}

// writeCard outputs a card in the requested format.
func writeCard(card *cardsDomain.Card, format string, writer io.Writer) {
	if format == "json" {
		writeCardJSON(card, writer)
		return
	}
	writeCardText(card, writer)
}
