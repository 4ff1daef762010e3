package repository

import (
	"context"
	"errors"

	"github.com/crmlite/customers/internal/model"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	apperrors "github.com/crmlite/customers/internal/errors"
)

const pgUniqueViolationCode = "23505"

type CustomerRepository interface {
	FindAll(context.Context) ([]*model.Customer, error)
	FindByID(context.Context, int64) (*model.Customer, error)
	FindByEmail(ctx context.Context, email string, excludeID int64) (*model.Customer, error)
	Create(context.Context, *model.Customer) error
	Update(context.Context, *model.Customer) error
	DeleteByID(context.Context, int64) (bool, error)
}

type postgresCustomerRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCustomerRepository(p *pgxpool.Pool) CustomerRepository {
	return &postgresCustomerRepository{pool: p}
}

func (repo *postgresCustomerRepository) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	q := `SELECT id, first_name, last_name, email, contact_number, created_at, updated_at
            FROM customers WHERE id = $1`
	return repo.scanRow(repo.pool.QueryRow(ctx, q, id))
}

func (repo *postgresCustomerRepository) FindByEmail(ctx context.Context, email string, excludeID int64) (*model.Customer, error) {
	q := `SELECT id, first_name, last_name, email, contact_number, created_at, updated_at
            FROM customers WHERE email = $1 AND id <> $2`
	return repo.scanRow(repo.pool.QueryRow(ctx, q, email, excludeID))
}

func (repo *postgresCustomerRepository) FindAll(ctx context.Context) ([]*model.Customer, error) {
	customers := make([]*model.Customer, 0)
	q := `SELECT id, first_name, last_name, email, contact_number, created_at, updated_at
            FROM customers ORDER BY id`

	rows, err := repo.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.ContactNumber, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func (repo *postgresCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	q := `INSERT INTO customers(first_name, last_name, email, contact_number, created_at, updated_at)
               VALUES($1, $2, $3, $4, $5, $6) RETURNING id`
	row := repo.pool.QueryRow(ctx, q, c.FirstName, c.LastName, c.Email, c.ContactNumber, c.CreatedAt, c.UpdatedAt)
	if err := row.Scan(&c.ID); err != nil {
		return asDomainErr(err)
	}
	return nil
}

func (repo *postgresCustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	q := `UPDATE customers SET first_name = $1, last_name = $2, email = $3, contact_number = $4, updated_at = $5
           WHERE id = $6`
	if _, err := repo.pool.Exec(ctx, q, c.FirstName, c.LastName, c.Email, c.ContactNumber, c.UpdatedAt, c.ID); err != nil {
		return asDomainErr(err)
	}
	return nil
}

func (repo *postgresCustomerRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	q := "DELETE FROM customers WHERE id = $1"
	comm, err := repo.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return comm.RowsAffected() > 0, nil
}

func (repo *postgresCustomerRepository) scanRow(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.ContactNumber, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// asDomainErr keeps the store's unique constraint as the arbiter for
// racing writes to the same email
func asDomainErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
		return apperrors.NewConflictErr("Customer with this email already exists.")
	}
	return err
}
