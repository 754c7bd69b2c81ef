package storage

import (
	"context"
	"errors"
)

// ErrBlobNotFound возвращается, когда по ключу ничего не сохранено.
var ErrBlobNotFound = errors.New("blob not found")

// SnapshotStore — persistence-адаптер ядра: хранит весь набор данных как
// непрозрачный блоб. Формат блоба адаптеру неизвестен и им не трактуется.
type SnapshotStore interface {
	Save(ctx context.Context, key string, data []byte) error

	// Load returns ErrBlobNotFound when nothing was saved under key.
	Load(ctx context.Context, key string) ([]byte, error)
}
