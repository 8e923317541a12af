package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// InputFormat — формат входного файла CLI.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// Summary — итог проверки: сколько записей прошло и сколько отброшено.
type Summary struct {
	Valid   int
	Invalid int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d valid / %d invalid", s.Valid, s.Invalid)
}

// resolve — auto превращается в json/jsonl по расширению файла.
func (f InputFormat) resolve(path string) InputFormat {
	if f != FormatAuto {
		return f
	}
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return FormatJSONL
	}
	return FormatJSON
}

// ValidateFile — проверяет файл с одной записью (.json) или потоком записей (.jsonl).
// Валидные записи пишутся в w компактным JSON, по одной на строку.
// Для .json невалидная запись — ошибка; для .jsonl она лишь учитывается в Summary.
func ValidateFile(ctx context.Context, forms FormSet, path string, format InputFormat, w io.Writer) (Summary, error) {
	format = format.resolve(path)
	if format != FormatJSON && format != FormatJSONL {
		return Summary{}, fmt.Errorf("unsupported format: %s", format)
	}

	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	if format == FormatJSONL {
		return ValidateJSONLStream(ctx, forms, f, w)
	}

	raw, err := io.ReadAll(f)
	if err != nil {
		return Summary{}, fmt.Errorf("read file: %w", err)
	}
	rec, err := ValidateFormFromJSON(ctx, forms, raw)
	if err != nil {
		return Summary{Invalid: 1}, err
	}
	if err := writeRecord(w, rec); err != nil {
		return Summary{}, err
	}
	return Summary{Valid: 1}, nil
}

func writeRecord(w io.Writer, rec *FormRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}
