package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/labforge/labstock/internal/models"
)

const componentColumns = `c.id, c.name, c.manufacturer, c.supplier, c.part_number, c.description,
	c.quantity, c.location_bin, c.unit_price, c.datasheet_link, c.critical_low_threshold,
	c.category_id, cat.name, c.created_by, u.username, c.created_at, c.updated_at, c.last_outward_date`

const componentJoins = `FROM components c
	JOIN categories cat ON cat.id = c.category_id
	JOIN users u ON u.id = c.created_by`

type PostgresComponentRepository struct {
	db *sql.DB
}

func NewPostgresComponentRepository(db *sql.DB) *PostgresComponentRepository {
	return &PostgresComponentRepository{db: db}
}

func (r *PostgresComponentRepository) Create(c models.Component) (models.Component, error) {
	query := `INSERT INTO components
		(name, manufacturer, supplier, part_number, description, quantity, location_bin,
		 unit_price, datasheet_link, critical_low_threshold, category_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query,
		c.Name, c.Manufacturer, c.Supplier, c.PartNumber, c.Description, c.Quantity,
		c.LocationBin, c.UnitPrice, c.DatasheetLink, c.CriticalLowThreshold,
		c.CategoryID, c.CreatedBy, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	if err != nil {
		return models.Component{}, mapComponentConstraint(err)
	}
	return c, nil
}

func (r *PostgresComponentRepository) GetByID(id int) (models.Component, error) {
	query := `SELECT ` + componentColumns + ` ` + componentJoins + ` WHERE c.id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	c, err := scanComponent(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Component{}, ErrComponentNotFound
	}
	return c, err
}

func (r *PostgresComponentRepository) GetByPartNumber(partNumber string) (models.Component, error) {
	query := `SELECT ` + componentColumns + ` ` + componentJoins + ` WHERE c.part_number = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	c, err := scanComponent(r.db.QueryRowContext(ctx, query, partNumber))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Component{}, ErrComponentNotFound
	}
	return c, err
}

func (r *PostgresComponentRepository) GetAll() ([]models.Component, error) {
	query := `SELECT ` + componentColumns + ` ` + componentJoins + ` ORDER BY c.id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComponents(rows)
}

func (r *PostgresComponentRepository) Filter(cf ComponentFilter) ([]models.Component, int, error) {
	conditions, args, argIdx := componentFilterConditions(cf)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var totalCount int
	countQuery := `SELECT COUNT(*) FROM components c WHERE 1=1` + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + componentColumns + ` ` + componentJoins + ` WHERE 1=1` + conditions
	query += " ORDER BY c.created_at DESC, c.id DESC"

	if cf.Limit != nil && *cf.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *cf.Limit)
		argIdx++
	}
	if cf.Offset != nil && *cf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *cf.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	components, err := collectComponents(rows)
	if err != nil {
		return nil, 0, err
	}
	return components, totalCount, nil
}

func componentFilterConditions(cf ComponentFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if cf.CategoryID != nil {
		query += fmt.Sprintf(" AND c.category_id = $%d", argIdx)
		args = append(args, *cf.CategoryID)
		argIdx++
	}
	if cf.Search != "" {
		query += fmt.Sprintf(" AND (c.name ILIKE $%d OR c.part_number ILIKE $%d OR c.description ILIKE $%d OR c.manufacturer ILIKE $%d OR c.supplier ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx, argIdx)
		args = append(args, "%"+cf.Search+"%")
		argIdx++
	}
	if cf.MinQty != nil {
		query += fmt.Sprintf(" AND c.quantity >= $%d", argIdx)
		args = append(args, *cf.MinQty)
		argIdx++
	}
	if cf.MaxQty != nil {
		query += fmt.Sprintf(" AND c.quantity <= $%d", argIdx)
		args = append(args, *cf.MaxQty)
		argIdx++
	}
	if cf.Location != "" {
		query += fmt.Sprintf(" AND c.location_bin ILIKE $%d", argIdx)
		args = append(args, "%"+cf.Location+"%")
		argIdx++
	}

	return query, args, argIdx
}

func (r *PostgresComponentRepository) Update(c models.Component) (models.Component, error) {
	query := `UPDATE components SET name = $1, manufacturer = $2, supplier = $3, part_number = $4,
		description = $5, quantity = $6, location_bin = $7, unit_price = $8, datasheet_link = $9,
		critical_low_threshold = $10, category_id = $11, updated_at = $12
		WHERE id = $13`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query,
		c.Name, c.Manufacturer, c.Supplier, c.PartNumber, c.Description, c.Quantity,
		c.LocationBin, c.UnitPrice, c.DatasheetLink, c.CriticalLowThreshold,
		c.CategoryID, c.UpdatedAt, c.ID)
	if err != nil {
		return models.Component{}, mapComponentConstraint(err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Component{}, ErrComponentNotFound
	}
	return c, nil
}

func (r *PostgresComponentRepository) Delete(id int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var refs int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE component_id = $1`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrComponentHasTransactions
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM components WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrComponentNotFound
	}
	return nil
}

func (r *PostgresComponentRepository) LowStock() ([]models.Component, []models.Component, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	lowQuery := `SELECT ` + componentColumns + ` ` + componentJoins +
		` WHERE c.quantity > 0 AND c.quantity <= c.critical_low_threshold ORDER BY c.quantity ASC, c.id`
	rows, err := r.db.QueryContext(ctx, lowQuery)
	if err != nil {
		return nil, nil, err
	}
	low, err := collectComponents(rows)
	rows.Close()
	if err != nil {
		return nil, nil, err
	}

	outQuery := `SELECT ` + componentColumns + ` ` + componentJoins + ` WHERE c.quantity = 0 ORDER BY c.id`
	rows, err = r.db.QueryContext(ctx, outQuery)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	out, err := collectComponents(rows)
	if err != nil {
		return nil, nil, err
	}

	return low, out, nil
}

func (r *PostgresComponentRepository) OldStock(staleSince time.Time) ([]models.Component, error) {
	query := `SELECT ` + componentColumns + ` ` + componentJoins + `
		WHERE c.quantity > 0 AND (c.last_outward_date IS NULL OR c.last_outward_date < $1)
		ORDER BY c.last_outward_date ASC NULLS FIRST, c.quantity DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, staleSince)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComponents(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComponent(row rowScanner) (models.Component, error) {
	var c models.Component
	var lastOutward sql.NullTime
	err := row.Scan(&c.ID, &c.Name, &c.Manufacturer, &c.Supplier, &c.PartNumber, &c.Description,
		&c.Quantity, &c.LocationBin, &c.UnitPrice, &c.DatasheetLink, &c.CriticalLowThreshold,
		&c.CategoryID, &c.CategoryName, &c.CreatedBy, &c.CreatorName, &c.CreatedAt, &c.UpdatedAt, &lastOutward)
	if err != nil {
		return models.Component{}, err
	}
	if lastOutward.Valid {
		t := lastOutward.Time
		c.LastOutwardDate = &t
	}
	return c, nil
}

func collectComponents(rows *sql.Rows) ([]models.Component, error) {
	var components []models.Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return components, nil
}

// mapComponentConstraint translates Postgres unique violations on the part
// number into the repo sentinel.
func mapComponentConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicatePartNumber
	}
	return err
}
