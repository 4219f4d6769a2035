package ports

import (
	"context"
	"mime/multipart"
)

type FileStorage interface {
	Save(ctx context.Context, field string, fh *multipart.FileHeader) (string, error)
	Remove(name string)
}
