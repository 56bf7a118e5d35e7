package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savvy/internal/importer/statement"
	"github.com/MrJamesThe3rd/savvy/internal/metrics"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

// ErrInvalidStatement wraps every failure to read the uploaded file.
var ErrInvalidStatement = errors.New("invalid statement")

// FallbackCategory is assigned to rows that neither the statement nor the
// user's rules could categorise.
const FallbackCategory = "Other"

//go:generate mockgen -source=service.go -destination=categorizer_mock.go -package=importer
type Categorizer interface {
	Categorize(ctx context.Context, userID uuid.UUID, params []transaction.CreateParams) error
}

type Service struct {
	parser      Parser
	categorizer Categorizer
}

// NewService returns an importer backed by the statement parser. categorizer
// may be nil.
func NewService(categorizer Categorizer) *Service {
	return &Service{
		parser:      statement.NewParser(),
		categorizer: categorizer,
	}
}

// Parse reads r and fills in categories. Nothing is persisted.
func (s *Service) Parse(ctx context.Context, userID uuid.UUID, source Source, r io.Reader) ([]transaction.CreateParams, error) {
	params, err := s.parser.Parse(r, strings.ToLower(strings.TrimSpace(string(source))))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStatement, err)
	}

	if s.categorizer != nil {
		if err := s.categorizer.Categorize(ctx, userID, params); err != nil {
			slog.Warn("categorising import failed", "user_id", userID, "error", err)
		}
	}

	for i := range params {
		params[i].UserID = userID
		if strings.TrimSpace(params[i].Category) == "" {
			params[i].Category = FallbackCategory
		}
	}

	return params, nil
}

// Import parses r and hands the rows to transactions.ImportBatch, which
// refuses to write anything when a row looks like an existing transaction.
func (s *Service) Import(ctx context.Context, transactions *transaction.Service, userID uuid.UUID, source Source, r io.Reader) (*transaction.ImportResult, error) {
	params, err := s.Parse(ctx, userID, source, r)
	if err != nil {
		return nil, err
	}

	result, err := transactions.ImportBatch(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	metrics.TransactionsImportedTotal.Add(float64(len(result.Imported)))

	return result, nil
}
