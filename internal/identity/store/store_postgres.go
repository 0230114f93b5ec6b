package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"callerid/internal/identity/models"
	id "callerid/pkg/domain"
	"callerid/pkg/platform/sentinel"
)

//go:embed schema.sql
var schema string

const uniqueViolation = "23505"

// PostgresStore persists users, contacts and spam reports in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed identity store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the tables if they do not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return unavailable("migrate identity schema", err)
	}
	return nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, phone, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var userID int64
	err := s.db.QueryRowContext(ctx, query, user.Name, user.Phone, user.Email, user.PasswordHash, user.CreatedAt).Scan(&userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return unavailable("create user", err)
	}
	user.ID = id.UserID(userID)
	return nil
}

const userColumns = `id, name, phone, email, password_hash, created_at`

func (s *PostgresStore) FindUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1`, phone)
	return scanUser(row, "find user by phone")
}

func (s *PostgresStore) FindUserByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, int64(userID))
	return scanUser(row, "find user by id")
}

func (s *PostgresStore) FindUsersByNamePrefix(ctx context.Context, prefix string) ([]*models.User, error) {
	return s.queryUsers(ctx, "find users by name prefix", escapeLike(prefix)+"%")
}

func (s *PostgresStore) FindUsersByNameSubstring(ctx context.Context, fragment string) ([]*models.User, error) {
	return s.queryUsers(ctx, "find users by name substring", "%"+escapeLike(fragment)+"%")
}

func (s *PostgresStore) queryUsers(ctx context.Context, op, pattern string) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE name ILIKE $1 ESCAPE '\' ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query, pattern)
	if err != nil {
		return nil, unavailable(op, err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows, op)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(op, err)
	}
	return users, nil
}

func (s *PostgresStore) CreateContact(ctx context.Context, contact *models.Contact) error {
	query := `
		INSERT INTO contacts (owner_id, name, phone, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var contactID int64
	err := s.db.QueryRowContext(ctx, query, int64(contact.OwnerID), contact.Name, contact.Phone, contact.CreatedAt).Scan(&contactID)
	if err != nil {
		return unavailable("create contact", err)
	}
	contact.ID = id.ContactID(contactID)
	return nil
}

func (s *PostgresStore) FindContactsByPhone(ctx context.Context, phone string) ([]*models.Contact, error) {
	return s.queryContacts(ctx, "find contacts by phone",
		`SELECT id, owner_id, name, phone, created_at FROM contacts WHERE phone = $1 ORDER BY id`, phone)
}

func (s *PostgresStore) FindContactsByOwner(ctx context.Context, owner id.UserID) ([]*models.Contact, error) {
	return s.queryContacts(ctx, "find contacts by owner",
		`SELECT id, owner_id, name, phone, created_at FROM contacts WHERE owner_id = $1 ORDER BY id`, int64(owner))
}

func (s *PostgresStore) queryContacts(ctx context.Context, op, query string, arg any) ([]*models.Contact, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, unavailable(op, err)
	}
	defer rows.Close()

	contacts := make([]*models.Contact, 0)
	for rows.Next() {
		var (
			c       models.Contact
			rowID   int64
			ownerID int64
		)
		if err := rows.Scan(&rowID, &ownerID, &c.Name, &c.Phone, &c.CreatedAt); err != nil {
			return nil, unavailable(op, err)
		}
		c.ID = id.ContactID(rowID)
		c.OwnerID = id.UserID(ownerID)
		contacts = append(contacts, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(op, err)
	}
	return contacts, nil
}

func (s *PostgresStore) CreateSpamReport(ctx context.Context, report *models.SpamReport) error {
	query := `
		INSERT INTO spam_reports (reporter_id, phone, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var reportID int64
	err := s.db.QueryRowContext(ctx, query, int64(report.ReporterID), report.Phone, report.CreatedAt).Scan(&reportID)
	if err != nil {
		return unavailable("create spam report", err)
	}
	report.ID = id.ReportID(reportID)
	return nil
}

func (s *PostgresStore) CountSpamReportsByPhone(ctx context.Context, phone string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM spam_reports WHERE phone = $1`, phone).Scan(&n)
	if err != nil {
		return 0, unavailable("count spam reports", err)
	}
	return n, nil
}

// CountSpamReportsByPhones counts reports for many phones in one round trip.
// Phones without reports are present in the result with a zero count.
func (s *PostgresStore) CountSpamReportsByPhones(ctx context.Context, phones []string) (map[string]int, error) {
	counts := make(map[string]int, len(phones))
	if len(phones) == 0 {
		return counts, nil
	}
	for _, p := range phones {
		counts[p] = 0
	}
	query := `
		SELECT phone, COUNT(*)
		FROM spam_reports
		WHERE phone = ANY($1::text[])
		GROUP BY phone
	`
	rows, err := s.db.QueryContext(ctx, query, pq.Array(phones))
	if err != nil {
		return nil, unavailable("count spam reports batch", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			phone string
			n     int
		)
		if err := rows.Scan(&phone, &n); err != nil {
			return nil, unavailable("count spam reports batch", err)
		}
		counts[phone] = n
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("count spam reports batch", err)
	}
	return counts, nil
}

func (s *PostgresStore) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, unavailable("count users", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, op string) (*models.User, error) {
	var (
		u      models.User
		userID int64
	)
	if err := row.Scan(&userID, &u.Name, &u.Phone, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, unavailable(op, err)
	}
	u.ID = id.UserID(userID)
	return &u, nil
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
}
