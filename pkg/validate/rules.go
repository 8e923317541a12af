package validate

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Gunvolt24/larek/internal/domain"
)

// Допустимое количество цифр в телефоне (E.164 — не больше 15).
const (
	minPhoneDigits = 10
	maxPhoneDigits = 15
)

var phoneShape = regexp.MustCompile(`^\+?[0-9() \-]+$`)

// engine — общий экземпляр go-playground/validator; после регистрации правил
// безопасен для конкурентного использования.
var engine = newEngine()

func newEngine() *validator.Validate {
	v := validator.New()
	// Ошибка регистрации возможна только при пустом теге или nil-функции.
	_ = v.RegisterValidation("phone", isPhone)
	_ = v.RegisterValidation("email_host", hasDottedHost)
	return v
}

// fieldRule — имя поля формы и теги правил для него.
type fieldRule struct {
	name string
	tag  string
}

// isPhone — цифры, пробелы, скобки, дефисы и необязательный ведущий "+".
func isPhone(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !phoneShape.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= minPhoneDigits && digits <= maxPhoneDigits
}

// hasDottedHost — доменная часть адреса содержит точку не на краях.
func hasDottedHost(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	at := strings.LastIndexByte(s, '@')
	if at < 0 {
		return false
	}
	host := s[at+1:]
	dot := strings.IndexByte(host, '.')
	return dot > 0 && !strings.HasSuffix(host, ".")
}

// checkFields — прогоняет каждое поле через его правило.
// Значения обрезаются по пробелам; отсутствующий ключ равен пустой строке.
func checkFields(rules []fieldRule, fields domain.FieldMap) map[string]string {
	problems := make(map[string]string)
	for _, r := range rules {
		value := strings.TrimSpace(fields[r.name])
		if err := engine.Var(value, r.tag); err != nil {
			problems[r.name] = reason(err)
		}
	}
	return problems
}

func reason(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "required" {
		return "обязателен"
	}
	return "некорректен"
}

// describe — причины отказа одной строкой в порядке полей формы.
func describe(rules []fieldRule, problems map[string]string) string {
	parts := make([]string, 0, len(problems))
	for _, r := range rules {
		if msg, ok := problems[r.name]; ok {
			parts = append(parts, r.name+" "+msg)
		}
	}
	return strings.Join(parts, "; ")
}
