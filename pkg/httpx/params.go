package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes — предел тела запроса для DecodeStrict.
const MaxBodyBytes = 1 << 20

var (
	// ErrBadJSON — тело запроса не разобрано.
	ErrBadJSON = errors.New("bad json body")
	// ErrBodyTooLarge — тело длиннее MaxBodyBytes.
	ErrBodyTooLarge = errors.New("request body too large")
)

// ClampInt — ограничение значения v в диапазоне [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseLimitOffset — читает limit/offset из query с дефолтами и границами.
func ParseLimitOffset(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int) {
	limit = ClampInt(defaultLimit, 1, maxLimit)
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = ClampInt(v, 1, maxLimit)
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

// PathID — параметр пути без пробелов по краям.
func PathID(c *gin.Context, name string) string {
	return strings.TrimSpace(c.Param(name))
}

// DecodeStrict — разбирает тело (не больше MaxBodyBytes) как ровно один JSON-документ в dst;
// неизвестные поля и хвост после документа — ErrBadJSON, превышение размера — ErrBodyTooLarge.
func DecodeStrict(c *gin.Context, dst any) error {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return decodeErr(err)
	}
	if err := dec.Decode(new(json.RawMessage)); err != io.EOF {
		if err != nil {
			if tooLarge := decodeErr(err); errors.Is(tooLarge, ErrBodyTooLarge) {
				return tooLarge
			}
		}
		return fmt.Errorf("%w: trailing data", ErrBadJSON)
	}
	return nil
}

func decodeErr(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, mbe.Limit)
	}
	return fmt.Errorf("%w: %v", ErrBadJSON, err)
}

// BodyStatus — HTTP-статус для ошибки DecodeStrict.
func BodyStatus(err error) int {
	if errors.Is(err, ErrBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// AbortJSON — ответ {"error": msg} с прерыванием цепочки.
func AbortJSON(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
