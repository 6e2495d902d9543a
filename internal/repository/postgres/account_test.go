package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studysphere/backend/internal/domain"
	apperrors "github.com/studysphere/backend/pkg/errors"
)

func newAccountTestFixture(t *testing.T) (*AccountRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewAccountRepository(mock)
	return repo, mock
}

func sampleAccount() *domain.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.User{
		ID:           "5b3f1c9e-8a21-4f7d-9c44-0f1a2b3c4d5e",
		Email:        "alice@example.com",
		Username:     "alice_s",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		Bio:          "studying compilers",
		ImageURL:     "",
		CreatedAt:    now,
	}
}

func accountColumns() []string {
	return []string{"id", "email", "username", "password_hash", "bio", "image_url", "created_at"}
}

func accountRow(u *domain.User) *pgxmock.Rows {
	return pgxmock.NewRows(accountColumns()).AddRow(
		u.ID, u.Email, u.Username, u.PasswordHash, u.Bio, u.ImageURL, u.CreatedAt,
	)
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestAccountRepository_Create_Success(t *testing.T) {
	repo, mock := newAccountTestFixture(t)
	defer mock.Close()

	u := sampleAccount()

	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.ID, u.Email, u.Username, u.PasswordHash, u.Bio, u.ImageURL, u.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), u)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock := newAccountTestFixture(t)
	defer mock.Close()

	u := sampleAccount()

	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.ID, u.Email, u.Username, u.PasswordHash, u.Bio, u.ImageURL, u.CreatedAt).
		WillReturnError(fmt.Errorf(`ERROR: duplicate key value violates unique constraint "users_email_key" (SQLSTATE 23505)`))

	err := repo.Create(context.Background(), u)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists), "expected ErrAlreadyExists, got: %v", err)
	assert.Contains(t, err.Error(), "email")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Create_DuplicateUsername(t *testing.T) {
	repo, mock := newAccountTestFixture(t)
	defer mock.Close()

	u := sampleAccount()

	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.ID, u.Email, u.Username, u.PasswordHash, u.Bio, u.ImageURL, u.CreatedAt).
		WillReturnError(fmt.Errorf(`ERROR: duplicate key value violates unique constraint "users_username_key" (SQLSTATE 23505)`))

	err := repo.Create(context.Background(), u)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists), "expected ErrAlreadyExists, got: %v", err)
	assert.Contains(t, err.Error(), "username")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// GetByID / GetByEmail / GetByUsername
// ---------------------------------------------------------------------------

func TestAccountRepository_GetByID_Success(t *testing.T) {
	repo, mock := newAccountTestFixture(t)
	defer mock.Close()

	u := sampleAccount()

	mock.ExpectQuery("SELECT .+ FROM users WHERE id =").
		WithArgs(u.ID).
		WillReturnRows(accountRow(u))

	got, err := repo.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.Username, got.Username)
	assert.Equal(t, u.PasswordHash, got.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newAccountTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM users WHERE id =").
		WithArgs("missing-id").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), "missing-id")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByEmail_Success(t *testing.T) {
	repo, mock := newAccountTestFixture(t)
	defer mock.Close()

	u := sampleAccount()

	mock.ExpectQuery("SELECT .+ FROM users WHERE email =").
		WithArgs(u.Email).
		WillReturnRows(accountRow(u))

	got, err := repo.GetByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByEmail_NotFound(t *testing.T) {
	repo, mock := newAccountTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM users WHERE email =").
		WithArgs("missing@example.com").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByEmail(context.Background(), "missing@example.com")
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByUsername_Success(t *testing.T) {
	repo, mock := newAccountTestFixture(t)
	defer mock.Close()

	u := sampleAccount()

	mock.ExpectQuery("SELECT .+ FROM users WHERE username =").
		WithArgs(u.Username).
		WillReturnRows(accountRow(u))

	got, err := repo.GetByUsername(context.Background(), u.Username)
	require.NoError(t, err)
	assert.Equal(t, u.Username, got.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByUsername_NotFound(t *testing.T) {
	repo, mock := newAccountTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM users WHERE username =").
		WithArgs("nobody").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByUsername(context.Background(), "nobody")
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByID_QueryError(t *testing.T) {
	repo, mock := newAccountTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM users WHERE id =").
		WithArgs("u-1").
		WillReturnError(fmt.Errorf("connection refused"))

	got, err := repo.GetByID(context.Background(), "u-1")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
