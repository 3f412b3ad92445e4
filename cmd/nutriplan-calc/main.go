// Command nutriplan-calc posts a JSON profile to nutriplan-api and prints the
// resulting plan.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"nutriplan-api/internal/client"
	"nutriplan-api/internal/models"
	"nutriplan-api/internal/validation"
)

func main() {
	url := flag.String("url", envOr("NUTRIPLAN_URL", "http://localhost:8080"), "service base URL")
	kind := flag.String("kind", "general", "general, normal_user, renal or reference")
	file := flag.String("file", "-", "JSON profile file, - for stdin")
	xlsx := flag.String("xlsx", "", "write the plan as XLSX to this path instead of printing JSON")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, client.New(*url, *timeout), *kind, *file, *xlsx, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client, kind, file, xlsx string, out io.Writer) error {
	var (
		result any
		data   []byte
		err    error
	)

	switch kind {
	case "reference":
		result, err = c.Reference(ctx)
	case "general", "normal_user":
		var req models.DietRequest
		if err := readJSON(file, &req); err != nil {
			return err
		}
		switch {
		case xlsx != "":
			if kind == "normal_user" {
				validation.ApplyNormalUserDefaults(&req)
			}
			data, err = c.ExportGeneral(ctx, req)
		case kind == "normal_user":
			result, err = c.CalculateNormalUser(ctx, req)
		default:
			result, err = c.CalculateGeneral(ctx, req)
		}
	case "renal":
		var req models.RenalDietRequest
		if err := readJSON(file, &req); err != nil {
			return err
		}
		if xlsx != "" {
			data, err = c.ExportRenal(ctx, req)
		} else {
			result, err = c.CalculateRenal(ctx, req)
		}
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
	if err != nil {
		return err
	}

	if xlsx != "" && data != nil {
		if err := os.WriteFile(xlsx, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", xlsx, err)
		}
		return nil
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func readJSON(file string, out any) error {
	var r io.Reader = os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("read profile %s: %w", file, err)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
