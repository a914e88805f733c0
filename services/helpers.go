package services

import (
	"fmt"
	"strings"
	"time"
)

// normalizeStringFields — единый пред-валидационный проход по строковым
// полям запроса: trim, пустая строка превращается в NULL. Формы на
// фронтенде шлют пустые строки вместо отсутствующих значений, поэтому
// нормализация выполняется до схемы валидации, один раз.
func normalizeStringFields(fields ...**string) {
	for _, f := range fields {
		if *f == nil {
			continue
		}
		trimmed := strings.TrimSpace(**f)
		if trimmed == "" {
			*f = nil
			continue
		}
		**f = trimmed
	}
}

// parseDate принимает дату в формате YYYY-MM-DD либо полный RFC3339.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", value)
	}
	return t, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intPtr(v int) *int {
	return &v
}

// requireNonNegative валидирует обязательный неотрицательный счётчик.
func requireNonNegative(verr *ValidationError, field string, value *int) {
	switch {
	case value == nil:
		verr.Add(field, "is required")
	case *value < 0:
		verr.Add(field, "must be zero or greater")
	}
}

// validateOrderRange проверяет необязательный слот состава.
func validateOrderRange(verr *ValidationError, field string, order *int, min, max int) {
	if order == nil {
		return
	}
	if *order < min || *order > max {
		verr.Add(field, fmt.Sprintf("must be between %d and %d", min, max))
	}
}
