package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pennywise-app/pennywise/internal/model"
)

// InsertTransaction prepends a transaction to the collection: it is
// assigned the next sequence number, and listings return newest-first.
func (q queries) InsertTransaction(ctx context.Context, txn model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(&txn); err != nil {
		return err
	}

	var srcID, srcName, srcColor sql.NullString
	if txn.Source != nil {
		srcID = sql.NullString{String: txn.Source.ID, Valid: true}
		srcName = sql.NullString{String: txn.Source.Name, Valid: true}
		srcColor = sql.NullString{String: txn.Source.Color, Valid: true}
	}

	var confidence sql.NullFloat64
	if txn.AIConfidence != nil {
		confidence = sql.NullFloat64{Float64: *txn.AIConfidence, Valid: true}
	}

	_, err := q.ext.ExecContext(ctx, `
		INSERT INTO transactions (
			id, seq, description, amount, date, type,
			category_id, category_name, category_color,
			source_id, source_name, source_color, ai_confidence
		)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM transactions), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.Description, txn.Amount, txn.Date, string(txn.Type),
		txn.Category.ID, txn.Category.Name, txn.Category.Color,
		srcID, srcName, srcColor, confidence)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// GetTransaction returns a transaction by id, or nil if it does not exist.
func (q queries) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := q.ext.QueryRowContext(ctx, `
		SELECT id, description, amount, date, type,
			category_id, category_name, category_color,
			source_id, source_name, source_color, ai_confidence
		FROM transactions
		WHERE id = ?`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// ListTransactions returns transactions newest-first. A non-positive limit
// returns the whole collection.
func (q queries) ListTransactions(ctx context.Context, limit int) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, description, amount, date, type,
			category_id, category_name, category_color,
			source_id, source_name, source_color, ai_confidence
		FROM transactions
		ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := q.ext.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// UpdateTransaction replaces the stored row, preserving its position in
// the collection (seq is untouched).
func (q queries) UpdateTransaction(ctx context.Context, txn model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(&txn); err != nil {
		return err
	}

	var srcID, srcName, srcColor sql.NullString
	if txn.Source != nil {
		srcID = sql.NullString{String: txn.Source.ID, Valid: true}
		srcName = sql.NullString{String: txn.Source.Name, Valid: true}
		srcColor = sql.NullString{String: txn.Source.Color, Valid: true}
	}

	var confidence sql.NullFloat64
	if txn.AIConfidence != nil {
		confidence = sql.NullFloat64{Float64: *txn.AIConfidence, Valid: true}
	}

	result, err := q.ext.ExecContext(ctx, `
		UPDATE transactions SET
			description = ?, amount = ?, date = ?, type = ?,
			category_id = ?, category_name = ?, category_color = ?,
			source_id = ?, source_name = ?, source_color = ?, ai_confidence = ?
		WHERE id = ?`,
		txn.Description, txn.Amount, txn.Date, string(txn.Type),
		txn.Category.ID, txn.Category.Name, txn.Category.Color,
		srcID, srcName, srcColor, confidence, txn.ID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s not found", txn.ID)
	}

	return nil
}

// DeleteTransaction removes a transaction by id.
func (q queries) DeleteTransaction(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	_, err := q.ext.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return nil
}

// ReassignTransactionCategory rewrites the category snapshot of every
// expense transaction pointing at fromCategoryID.
func (q queries) ReassignTransactionCategory(ctx context.Context, fromCategoryID string, to model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(fromCategoryID, "fromCategoryID"); err != nil {
		return err
	}

	_, err := q.ext.ExecContext(ctx, `
		UPDATE transactions
		SET category_id = ?, category_name = ?, category_color = ?
		WHERE type = ? AND category_id = ?`,
		to.ID, to.Name, to.Color, string(model.TypeExpense), fromCategoryID)
	if err != nil {
		return fmt.Errorf("failed to reassign transaction categories: %w", err)
	}

	return nil
}

// ReassignTransactionSource rewrites the income source snapshot of every
// income transaction pointing at fromSourceID.
func (q queries) ReassignTransactionSource(ctx context.Context, fromSourceID string, to model.IncomeSource) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(fromSourceID, "fromSourceID"); err != nil {
		return err
	}

	_, err := q.ext.ExecContext(ctx, `
		UPDATE transactions
		SET source_id = ?, source_name = ?, source_color = ?
		WHERE type = ? AND source_id = ?`,
		to.ID, to.Name, to.Color, string(model.TypeIncome), fromSourceID)
	if err != nil {
		return fmt.Errorf("failed to reassign transaction sources: %w", err)
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*model.Transaction, error) {
	var txn model.Transaction
	var txnType string
	var srcID, srcName, srcColor sql.NullString
	var confidence sql.NullFloat64

	err := row.Scan(
		&txn.ID, &txn.Description, &txn.Amount, &txn.Date, &txnType,
		&txn.Category.ID, &txn.Category.Name, &txn.Category.Color,
		&srcID, &srcName, &srcColor, &confidence)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	txn.Type = model.TransactionType(txnType)
	if srcID.Valid {
		txn.Source = &model.IncomeSource{
			ID:    srcID.String,
			Name:  srcName.String,
			Color: srcColor.String,
		}
	}
	if confidence.Valid {
		c := confidence.Float64
		txn.AIConfidence = &c
	}

	return &txn, nil
}
