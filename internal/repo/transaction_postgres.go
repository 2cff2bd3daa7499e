package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/labforge/labstock/internal/models"
)

type PostgresTransactionRepository struct {
	db *sql.DB
}

func NewPostgresTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

// Record appends a ledger row and adjusts the component quantity inside one
// SQL transaction. The OUTWARD availability check rides on the conditional
// UPDATE itself (quantity + delta >= 0 guard plus affected-row count), so
// concurrent movements against the same component serialize on the row lock
// and can never drive the quantity negative.
func (r *PostgresTransactionRepository) Record(t models.Transaction) (models.Transaction, models.Component, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Transaction{}, models.Component{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	delta := t.Quantity
	if t.Type == models.Outward {
		delta = -t.Quantity
	}

	var update string
	if t.Type == models.Outward {
		update = `UPDATE components
			SET quantity = quantity + $1, last_outward_date = $2, updated_at = $2
			WHERE id = $3 AND quantity + $1 >= 0`
	} else {
		update = `UPDATE components
			SET quantity = quantity + $1, updated_at = $2
			WHERE id = $3 AND quantity + $1 >= 0`
	}

	res, err := tx.ExecContext(ctx, update, delta, now, t.ComponentID)
	if err != nil {
		return models.Transaction{}, models.Component{}, fmt.Errorf("failed to adjust quantity: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		// Distinguish a missing component from an oversell.
		var available int
		err := tx.QueryRowContext(ctx, `SELECT quantity FROM components WHERE id = $1`, t.ComponentID).Scan(&available)
		if errors.Is(err, sql.ErrNoRows) {
			return models.Transaction{}, models.Component{}, ErrComponentNotFound
		}
		if err != nil {
			return models.Transaction{}, models.Component{}, err
		}
		return models.Transaction{}, models.Component{}, &InsufficientStockError{Available: available, Requested: t.Quantity}
	}

	t.CreatedAt = now
	insert := `INSERT INTO transactions (type, quantity, reason, project, remarks, component_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := tx.QueryRowContext(ctx, insert,
		t.Type, t.Quantity, t.Reason, t.Project, t.Remarks, t.ComponentID, t.UserID, t.CreatedAt).Scan(&t.ID); err != nil {
		return models.Transaction{}, models.Component{}, fmt.Errorf("failed to insert transaction: %w", err)
	}

	query := `SELECT ` + componentColumns + ` ` + componentJoins + ` WHERE c.id = $1`
	c, err := scanComponent(tx.QueryRowContext(ctx, query, t.ComponentID))
	if err != nil {
		return models.Transaction{}, models.Component{}, err
	}

	var actor string
	if err := tx.QueryRowContext(ctx, `SELECT username FROM users WHERE id = $1`, t.UserID).Scan(&actor); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, models.Component{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Transaction{}, models.Component{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	t.ComponentName = c.Name
	t.PartNumber = c.PartNumber
	t.UserName = actor
	return t, c, nil
}

// List returns ledger entries, newest first.
func (r *PostgresTransactionRepository) List(tf TransactionFilter) ([]models.Transaction, int, error) {
	whereClause, args := transactionWhereClause(tf)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var total int
	countQuery := `SELECT COUNT(*) FROM transactions t ` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}

	query := `SELECT t.id, t.type, t.quantity, t.reason, t.project, t.remarks,
		t.component_id, t.user_id, t.created_at, c.name, c.part_number, u.username
		FROM transactions t
		JOIN components c ON c.id = t.component_id
		JOIN users u ON u.id = t.user_id ` + whereClause + ` ORDER BY t.created_at DESC, t.id DESC`

	argIdx := len(args) + 1
	limit := defaultTransactionLimit
	if tf.Limit != nil && *tf.Limit > 0 {
		limit = min(*tf.Limit, defaultTransactionLimit)
	}
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, limit)
	argIdx++

	if tf.Offset != nil && *tf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *tf.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Type, &t.Quantity, &t.Reason, &t.Project, &t.Remarks,
			&t.ComponentID, &t.UserID, &t.CreatedAt, &t.ComponentName, &t.PartNumber, &t.UserName); err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

const defaultTransactionLimit = 100

func transactionWhereClause(tf TransactionFilter) (string, []any) {
	whereClause := "WHERE 1=1"
	args := []any{}
	argIdx := 1

	if tf.ComponentID != nil {
		whereClause += fmt.Sprintf(" AND t.component_id = $%d", argIdx)
		args = append(args, *tf.ComponentID)
		argIdx++
	}
	if tf.Since != nil {
		whereClause += fmt.Sprintf(" AND t.created_at >= $%d", argIdx)
		args = append(args, *tf.Since)
		argIdx++
	}
	if tf.Until != nil {
		whereClause += fmt.Sprintf(" AND t.created_at <= $%d", argIdx)
		args = append(args, *tf.Until)
	}

	return whereClause, args
}
