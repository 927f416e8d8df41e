package main

import (
	"encoding/json"
	"fmt"
	"os"

	journalclub "github.com/nayanlc19/journal-club-standalone"
	"github.com/nayanlc19/journal-club-standalone/model"
)

// resultEnvelope is the JSON shape every subcommand writes to stdout.
// Exactly one of Figures, Metadata is set on success.
type resultEnvelope struct {
	Success        bool                  `json:"success"`
	Error          string                `json:"error,omitempty"`
	Figures        []model.Figure        `json:"figures,omitempty"`
	Metadata       *model.Metadata       `json:"metadata,omitempty"`
	Warnings       []journalclub.Warning `json:"warnings,omitempty"`
	ProcessingTime float64               `json:"processing_time,omitempty"`
}

func writeResult(env resultEnvelope) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// fail writes a failure envelope to stdout and returns err so the
// process exits nonzero. Consumers parsing stdout and consumers
// checking the exit code both see the failure.
func fail(err error) error {
	_ = writeResult(resultEnvelope{Success: false, Error: err.Error()})
	return err
}
