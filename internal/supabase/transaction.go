package supabase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

type transactionRow struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at"`
}

type transactionInsert struct {
	UserID      uuid.UUID       `json:"user_id"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
}

func toTransactionInsert(tx *transaction.Transaction) transactionInsert {
	return transactionInsert{
		UserID:      tx.UserID,
		Type:        string(tx.Type),
		Category:    tx.Category,
		Description: tx.Description,
		Amount:      tx.Amount,
		Date:        tx.Date.Format(time.DateOnly),
	}
}

func (r transactionRow) toDomain() (*transaction.Transaction, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("parsing transaction date: %w", err)
	}

	return &transaction.Transaction{
		ID:          r.ID,
		UserID:      r.UserID,
		Type:        transaction.Type(r.Type),
		Category:    r.Category,
		Description: r.Description,
		Amount:      r.Amount,
		Date:        date,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

func toTransactions(rows []transactionRow) ([]*transaction.Transaction, error) {
	txs := make([]*transaction.Transaction, 0, len(rows))

	for _, row := range rows {
		tx, err := row.toDomain()
		if err != nil {
			return nil, err
		}

		txs = append(txs, tx)
	}

	return txs, nil
}

type TransactionRepository struct {
	client *supabase.Client
}

func NewTransactionRepository(client *supabase.Client) *TransactionRepository {
	return &TransactionRepository{client: client}
}

func (r *TransactionRepository) CreateTransaction(_ context.Context, tx *transaction.Transaction) error {
	data, _, err := r.client.From(tableTransactions).
		Insert(toTransactionInsert(tx), false, "", returnRows, "").
		Execute()
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	row, err := decodeOne[transactionRow](data)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	tx.ID = row.ID
	tx.CreatedAt = row.CreatedAt
	tx.UpdatedAt = row.UpdatedAt

	return nil
}

func (r *TransactionRepository) GetTransaction(_ context.Context, userID, id uuid.UUID) (*transaction.Transaction, error) {
	data, _, err := r.client.From(tableTransactions).
		Select("*", "", false).
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	row, err := decodeOne[transactionRow](data)
	if err != nil {
		if errors.Is(err, errEmptyResponse) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return row.toDomain()
}

func (r *TransactionRepository) list(filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := r.client.From(tableTransactions).
		Select("*", "", false).
		Eq("user_id", filter.UserID.String())

	if filter.Type != nil {
		query = query.Eq("type", string(*filter.Type))
	}

	if filter.Category != nil {
		query = query.Eq("category", *filter.Category)
	}

	if filter.StartDate != nil {
		query = query.Gte("date", filter.StartDate.Format(time.DateOnly))
	}

	if filter.EndDate != nil {
		query = query.Lte("date", filter.EndDate.Format(time.DateOnly))
	}

	data, _, err := query.
		Order("date", &postgrest.OrderOpts{Ascending: false}).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	rows, err := decodeRows[transactionRow](data)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return toTransactions(rows)
}

func (r *TransactionRepository) ListTransactions(_ context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	return r.list(filter)
}

func (r *TransactionRepository) DeleteTransaction(_ context.Context, userID, id uuid.UUID) error {
	data, _, err := r.client.From(tableTransactions).
		Delete(returnRows, "").
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	rows, err := decodeRows[transactionRow](data)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if len(rows) == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

// BeginImport returns a batch writer. The REST interface cannot hold a database
// transaction open across requests, so Commit and Rollback are no-ops and the
// batch is written with a single bulk insert.
func (r *TransactionRepository) BeginImport(_ context.Context, userID uuid.UUID, _, _ time.Time) (transaction.ImportTx, error) {
	return &importTx{repo: r, userID: userID}, nil
}

type importTx struct {
	repo   *TransactionRepository
	userID uuid.UUID
}

func (itx *importTx) Commit() error   { return nil }
func (itx *importTx) Rollback() error { return nil }

func (itx *importTx) FindDuplicates(_ context.Context, params []transaction.CreateParams) ([]*transaction.Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	minDate, maxDate := params[0].Date, params[0].Date
	keySet := make(map[string]struct{}, len(params))

	for _, p := range params {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}

		keySet[p.Fingerprint()] = struct{}{}
	}

	existing, err := itx.repo.list(transaction.ListFilter{
		UserID:    itx.userID,
		StartDate: &minDate,
		EndDate:   &maxDate,
	})
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}

	var duplicates []*transaction.Transaction

	for _, tx := range existing {
		if _, found := keySet[tx.Fingerprint()]; found {
			duplicates = append(duplicates, tx)
		}
	}

	return duplicates, nil
}

func (itx *importTx) CreateTransactions(_ context.Context, txs []*transaction.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	inserts := make([]transactionInsert, len(txs))
	for i, tx := range txs {
		inserts[i] = toTransactionInsert(tx)
	}

	data, _, err := itx.repo.client.From(tableTransactions).
		Insert(inserts, false, "", returnRows, "").
		Execute()
	if err != nil {
		return fmt.Errorf("creating transactions: %w", err)
	}

	rows, err := decodeRows[transactionRow](data)
	if err != nil {
		return fmt.Errorf("creating transactions: %w", err)
	}

	for i := range min(len(rows), len(txs)) {
		txs[i].ID = rows[i].ID
		txs[i].CreatedAt = rows[i].CreatedAt
		txs[i].UpdatedAt = rows[i].UpdatedAt
	}

	return nil
}
