package storage

import (
	"context"
	"io"
)

// UploadResult описывает объект, сохранённый в хранилище иконок.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader — хранилище иконок карточек игроков. Сервис игроков
// получает nil, если хранилище не сконфигурировано, и тогда загрузка
// иконок отключена целиком.
type FileUploader interface {
	// Upload сохраняет иконку под ключом вида players/{id}/icon-{ts}.
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	// Delete убирает вытесненную иконку; вызывается best-effort.
	Delete(ctx context.Context, key string) error

	// GetPublicURL строит публичный URL иконки для ответов API.
	GetPublicURL(key string) string
}
