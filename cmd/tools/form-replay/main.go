// cmd/tools/form-replay/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"job-application-form/internal/common/config"
	apperrors "job-application-form/internal/common/errors"
	"job-application-form/internal/common/logger"
	"job-application-form/internal/common/validation"
	"job-application-form/internal/form"
	"job-application-form/internal/models"
)

func main() {
	eventsPath := flag.String("events", "", "path to a JSON array of form events")
	configPath := flag.String("config", "", "optional config file (defaults to configs/config.yaml)")
	flag.Parse()

	if *eventsPath == "" {
		fmt.Fprintln(os.Stderr, "usage: form-replay -events events.json [-config config.yaml]")
		os.Exit(2)
	}

	os.Exit(run(*eventsPath, *configPath, os.Stdout, os.Stderr))
}

// run returns 0 when the final submit was accepted, 1 when it was blocked and
// 2 on input or configuration errors.
func run(eventsPath, configPath string, stdout, stderr io.Writer) int {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}

	log, err := logger.NewStructured(cfg.Logging.Level, "console", "stderr")
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return 2
	}

	raw, err := os.ReadFile(eventsPath)
	if err != nil {
		fmt.Fprintf(stderr, "read events: %v\n", err)
		return 2
	}

	events, err := decodeEvents(raw)
	if err != nil {
		fmt.Fprintf(stderr, "events: %v\n", err)
		return 2
	}

	store := form.NewStore(
		form.WithLogger(log),
		form.WithExemptInapplicableFields(cfg.Form.ExemptInapplicableFields),
	)
	result, err := form.Replay(context.Background(), store, events)
	if err != nil {
		fmt.Fprintf(stderr, "replay: %v\n", err)
		return 2
	}

	printErrors(stdout, result.Errors)

	if !result.Accepted() {
		fmt.Fprintf(stdout, "\n%s\n", apperrors.SubmissionBlockedMessage)
		if result.LastBlock != nil && result.LastBlock.Details != "" {
			fmt.Fprintf(stdout, "(%s)\n", result.LastBlock.Details)
		}
		return 1
	}

	fmt.Fprintf(stdout, "\nSubmitted Data (%s)\n", result.Record.SubmissionID)
	if err := form.RenderSummary(stdout, result.Record); err != nil {
		fmt.Fprintf(stderr, "write summary: %v\n", err)
		return 2
	}
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// decodeEvents checks every element against the event schema before decoding.
func decodeEvents(raw []byte) ([]form.Event, error) {
	var docs []json.RawMessage
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("expected a JSON array: %w", err)
	}

	events := make([]form.Event, 0, len(docs))
	for i, doc := range docs {
		res, err := validation.ValidateJSON(validation.Event(), doc)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		if !res.Valid {
			return nil, fmt.Errorf("event %d: %v", i, res.GetErrorMessages())
		}

		var ev form.Event
		if err := json.Unmarshal(doc, &ev); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func printErrors(w io.Writer, errs models.ErrorMap) {
	fields := make([]string, 0, len(errs))
	for field, msg := range errs {
		if msg != "" {
			fields = append(fields, string(field))
		}
	}
	if len(fields) == 0 {
		fmt.Fprintln(w, "No field errors.")
		return
	}

	sort.Strings(fields)
	fmt.Fprintln(w, "Field errors:")
	for _, field := range fields {
		fmt.Fprintf(w, "  %s: %s\n", field, errs[models.FieldName(field)])
	}
}
