package ports

import "context"

type ExportService interface {
	// ExportCSV writes a snapshot of all users to a new file and returns its
	// path. The caller owns the file.
	ExportCSV(ctx context.Context) (string, error)
}
