package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден
	ErrNotFound           = errors.New("requested resource not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPlayerStatNotFound = errors.New("player stats not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed           = errors.New("validation failed")
	ErrTournamentInvalidDateRange = errors.New("tournament end date must be after start date")
	ErrTournamentInvalidType      = errors.New("invalid tournament type provided")
	ErrPlayerInvalidType          = errors.New("invalid player type provided")

	// Создание игрока откатилось (сам insert или фан-аут статистики)
	ErrPlayerCreationFailed = errors.New("player creation failed")

	// Загрузчик иконок не сконфигурирован
	ErrIconStorageDisabled = errors.New("icon storage is not configured")
)

// ValidationError несёт пофилдовые сообщения валидации запроса.
// Хендлеры отдают их клиенту как 422 с картой поле → сообщение.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, message string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("validation failed")
	for _, k := range keys {
		fmt.Fprintf(&b, "; %s: %s", k, e.Fields[k])
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
