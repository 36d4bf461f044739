package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/gym-service/internal/domain"
)

// CredentialStore is the narrow contract the lockout state machine relies on.
type CredentialStore interface {
	FindByUserName(ctx context.Context, userName string) (*domain.StaffAccount, error)
	FindByID(ctx context.Context, id int64) (*domain.StaffAccount, error)
	PersistAttemptState(ctx context.Context, userName string, failedAttempts int, locked bool) error
	Insert(ctx context.Context, account *domain.StaffAccount) (*domain.StaffAccount, error)
}

// StaffRepository handles persistence for staff accounts.
type StaffRepository interface {
	CredentialStore
	FindByEmail(ctx context.Context, email string) (*domain.StaffAccount, error)
	Update(ctx context.Context, account *domain.StaffAccount) (*domain.StaffAccount, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter StaffFilter) ([]domain.StaffAccount, error)
}

// StaffFilter defines query params for staff listing.
type StaffFilter struct {
	Role   *domain.Role
	Locked *bool
}

const staffColumns = `id, user_name, password_hash, role, full_name, email, phone, birth_date, cpf,
        job_title, hired_on, cref, salary, failed_attempts, locked, created_at`

type postgresStaffRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresStaffRepository instantiates the pgx-backed repository.
func NewPostgresStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &postgresStaffRepository{pool: pool}
}

func (r *postgresStaffRepository) Insert(ctx context.Context, account *domain.StaffAccount) (*domain.StaffAccount, error) {
	const query = `
        INSERT INTO staff_accounts (user_name, password_hash, role, full_name, email, phone, birth_date, cpf,
            job_title, hired_on, cref, salary, failed_attempts, locked)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, created_at`

	created := *account
	err := r.pool.QueryRow(ctx, query,
		account.UserName,
		account.PasswordHash,
		account.Role,
		account.FullName,
		account.Email,
		account.Phone,
		account.BirthDate,
		account.CPF,
		account.JobTitle,
		account.HiredOn,
		account.CREF,
		account.Salary,
		account.FailedAttempts,
		account.Locked,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, translatePgError(err)
	}
	return &created, nil
}

func (r *postgresStaffRepository) Update(ctx context.Context, account *domain.StaffAccount) (*domain.StaffAccount, error) {
	const query = `
        UPDATE staff_accounts
        SET user_name=$1, password_hash=$2, role=$3, full_name=$4, email=$5, phone=$6, birth_date=$7, cpf=$8,
            job_title=$9, hired_on=$10, cref=$11, salary=$12
        WHERE id=$13`

	cmd, err := r.pool.Exec(ctx, query,
		account.UserName,
		account.PasswordHash,
		account.Role,
		account.FullName,
		account.Email,
		account.Phone,
		account.BirthDate,
		account.CPF,
		account.JobTitle,
		account.HiredOn,
		account.CREF,
		account.Salary,
		account.ID,
	)
	if err != nil {
		return nil, translatePgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, account.ID)
}

// PersistAttemptState writes the counter and lock flag in a single statement.
func (r *postgresStaffRepository) PersistAttemptState(ctx context.Context, userName string, failedAttempts int, locked bool) error {
	const query = `UPDATE staff_accounts SET failed_attempts=$1, locked=$2 WHERE user_name=$3`

	cmd, err := r.pool.Exec(ctx, query, failedAttempts, locked, userName)
	if err != nil {
		return fmt.Errorf("persist attempt state: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresStaffRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM staff_accounts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresStaffRepository) FindByID(ctx context.Context, id int64) (*domain.StaffAccount, error) {
	return r.findOne(ctx, "id=$1", id)
}

func (r *postgresStaffRepository) FindByUserName(ctx context.Context, userName string) (*domain.StaffAccount, error) {
	return r.findOne(ctx, "user_name=$1", userName)
}

func (r *postgresStaffRepository) FindByEmail(ctx context.Context, email string) (*domain.StaffAccount, error) {
	return r.findOne(ctx, "email=$1", email)
}

func (r *postgresStaffRepository) findOne(ctx context.Context, where string, arg any) (*domain.StaffAccount, error) {
	query := "SELECT " + staffColumns + " FROM staff_accounts WHERE " + where

	account, err := scanStaff(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

func (r *postgresStaffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.StaffAccount, error) {
	query := "SELECT " + staffColumns + " FROM staff_accounts"
	args := []any{}
	clauses := []string{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		clauses = append(clauses, fmt.Sprintf("role=$%d", len(args)))
	}
	if filter.Locked != nil {
		args = append(args, *filter.Locked)
		clauses = append(clauses, fmt.Sprintf("locked=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StaffAccount
	for rows.Next() {
		account, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *account)
	}
	return result, rows.Err()
}

func scanStaff(row pgx.Row) (*domain.StaffAccount, error) {
	var account domain.StaffAccount
	if err := row.Scan(
		&account.ID,
		&account.UserName,
		&account.PasswordHash,
		&account.Role,
		&account.FullName,
		&account.Email,
		&account.Phone,
		&account.BirthDate,
		&account.CPF,
		&account.JobTitle,
		&account.HiredOn,
		&account.CREF,
		&account.Salary,
		&account.FailedAttempts,
		&account.Locked,
		&account.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
	}
	return err
}
