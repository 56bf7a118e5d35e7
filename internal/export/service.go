package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savvy/internal/metrics"
	"github.com/MrJamesThe3rd/savvy/internal/report"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

// Service produces report files from a user's transactions.
type Service struct {
	transactions *transaction.Service
	now          func() time.Time
}

// NewService creates a new export Service.
func NewService(txService *transaction.Service) *Service {
	return &Service{
		transactions: txService,
		now:          time.Now,
	}
}

// WithClock overrides the clock used for range cutoffs and filenames.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Build fetches the user's transactions and filters them into a report.
func (s *Service) Build(ctx context.Context, userID uuid.UUID, rng report.Range) (*report.Report, error) {
	now := s.now()
	filter := transaction.ListFilter{UserID: userID}

	if cutoff, ok := rng.Cutoff(now); ok {
		filter.StartDate = &cutoff
	}

	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return report.New(txs, rng, now), nil
}

// Write renders rep in the given format.
func Write(w io.Writer, rep *report.Report, format report.Format) error {
	var err error

	switch format {
	case report.FormatCSV:
		err = rep.WriteCSV(w)
	case report.FormatPDF:
		err = rep.WritePDF(w)
	default:
		return fmt.Errorf("%w: %q", report.ErrInvalidFormat, format)
	}

	if err != nil {
		return err
	}

	metrics.ExportsTotal.WithLabelValues(string(format), string(rep.Range)).Inc()

	return nil
}

// Save writes rep into dir under its download filename and returns the path.
// A partially written file is removed on failure.
func Save(rep *report.Report, format report.Format, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, rep.Filename(format))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if err := Write(f, rep, format); err != nil {
		f.Close()
		os.Remove(path)

		return "", err
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}

	return path, nil
}
