package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"

	"user-directory-api/internal/application/ports"
	domain "user-directory-api/internal/domain/user"
	"user-directory-api/internal/infrastructure/metrics"
)

var csvHeader = []string{
	"First Name",
	"Last Name",
	"Email",
	"Mobile",
	"Gender",
	"Status",
	"Location",
	"Created At",
}

type ExportService struct {
	userService ports.UserService
	tmpDir      string
	mCounter    *prometheus.CounterVec
}

// NewExportService writes export files into tmpDir; an empty tmpDir means
// the OS temp directory.
func NewExportService(
	userService ports.UserService,
	tmpDir string,
	mCounter *prometheus.CounterVec,
) ports.ExportService {
	return &ExportService{
		userService: userService,
		tmpDir:      tmpDir,
		mCounter:    mCounter,
	}
}

// ExportCSV writes every user into its own temporary file, so concurrent
// exports never share a path.
func (es *ExportService) ExportCSV(ctx context.Context) (string, error) {
	users, err := es.userService.FindAllUsers(ctx)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp(es.tmpDir, "users-*.csv")
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}

	if err = WriteCSV(f, users); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write export file: %w", err)
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close export file: %w", err)
	}

	metrics.Inc(es.mCounter, metrics.UsersExported)

	return f.Name(), nil
}

// WriteCSV writes the fixed header followed by one row per user.
func WriteCSV(w io.Writer, users domain.Users) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	rows := lo.Map(users, func(u *domain.User, _ int) []string {
		return []string{
			u.FirstName,
			u.LastName,
			u.Email,
			u.Mobile,
			string(u.Gender),
			string(u.Status),
			u.Location,
			u.CreatedAt.UTC().Format(time.RFC3339),
		}
	})
	if err := cw.WriteAll(rows); err != nil {
		return err
	}

	return cw.Error()
}
