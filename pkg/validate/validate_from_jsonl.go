package validate

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

const maxLineSize = 1 << 20

// ValidateJSONLStream — построчная проверка JSONL. Невалидная строка не прерывает поток,
// пустые строки не считаются. Ошибка — только отмена ctx, сбой чтения или записи.
func ValidateJSONLStream(ctx context.Context, forms FormSet, r io.Reader, w io.Writer) (Summary, error) {
	var sum Summary

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}

		rec, err := ValidateFormFromJSON(ctx, forms, line)
		if err != nil {
			sum.Invalid++
			continue
		}
		if err := writeRecord(w, rec); err != nil {
			return sum, err
		}
		sum.Valid++
	}
	if err := sc.Err(); err != nil {
		return sum, fmt.Errorf("scan: %w", err)
	}
	return sum, nil
}
