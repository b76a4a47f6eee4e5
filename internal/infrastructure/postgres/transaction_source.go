package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bibbank/fraudshield/internal/domain/model"
	pgpkg "github.com/bibbank/fraudshield/pkg/postgres"
)

// TransactionSource implements port.TransactionSource over the transactions table.
type TransactionSource struct {
	db pgpkg.Querier
}

// NewTransactionSource creates a PostgreSQL-backed transaction source.
func NewTransactionSource(db pgpkg.Querier) *TransactionSource {
	return &TransactionSource{db: db}
}

// Name identifies the source.
func (s *TransactionSource) Name() string { return "postgres" }

// Transactions returns every stored transaction in insertion order.
func (s *TransactionSource) Transactions(ctx context.Context) ([]model.TransactionRecord, error) {
	query := `
		SELECT account_id, amount::text, country, transactions_last_24h, is_new_device
		FROM transactions
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	records := make([]model.TransactionRecord, 0)
	for rows.Next() {
		var (
			accountID, amountText, country string
			count                          int
			isNewDevice                    bool
		)
		if err := rows.Scan(&accountID, &amountText, &country, &count, &isNewDevice); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		amount, err := decimal.NewFromString(amountText)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount %q for account %s: %w", amountText, accountID, err)
		}

		record, err := model.NewTransactionRecord(accountID, amount, country, count, isNewDevice)
		if err != nil {
			return nil, fmt.Errorf("stored transaction for account %s: %w", accountID, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return records, nil
}

// InsertTransactions appends records to the transactions table.
func InsertTransactions(ctx context.Context, db pgpkg.Querier, records []model.TransactionRecord) error {
	for _, r := range records {
		_, err := db.Exec(ctx,
			`INSERT INTO transactions (account_id, amount, country, transactions_last_24h, is_new_device)
			 VALUES ($1, $2::numeric, $3, $4, $5)`,
			r.AccountID(), r.Amount().String(), r.Country(), r.TransactionsLast24h(), r.IsNewDevice(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction for account %s: %w", r.AccountID(), err)
		}
	}
	return nil
}

// DeleteTransactions removes every stored transaction for the given accounts.
func DeleteTransactions(ctx context.Context, db pgpkg.Querier, accountIDs []string) (int64, error) {
	tag, err := db.Exec(ctx, `DELETE FROM transactions WHERE account_id = ANY($1)`, accountIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transactions: %w", err)
	}
	return tag.RowsAffected(), nil
}
