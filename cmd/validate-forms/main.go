package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/Gunvolt24/larek/pkg/validate"
)

// CLI для офлайн-проверки записей форм оформления ({"form": "...", "fields": {...}}).
// Валидные записи печатаются в stdout, итог — в stderr.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty, reads JSONL from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	methods := flag.String("payment-methods", "card,cash", "comma-separated allowed payment methods (empty = any)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	forms := validate.DefaultForms(splitList(*methods)...)
	format := validate.InputFormat(*formatStr)

	path := *inputPath
	if path == "" {
		path = "/dev/stdin"
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
	}

	summary, err := validate.ValidateFile(ctx, forms, path, format, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, summary)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", summary)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
