package repository

import (
	"database/sql"
	"errors"
	"events-discovery/data/models"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/pgx"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	ErrInvalidID = errors.New("invalid id")
)

type DBRepo interface {
	RunMigrations(dbName string) error
	Create(m models.Model) (id string, err error)
	Update(m models.Model) error
	Delete(m models.Model) error
	GetModelByID(m models.Model, id string) (models.Model, error)
	GetUserByID(id string) (models.User, error)
	GetEventByID(id string) (models.Event, error)
	QueryEvents(queryParams map[string]string) ([]models.Event, error)
}

type SqlRepo struct {
	DB *sql.DB
}

func (sr *SqlRepo) RunMigrations(dbName string) error {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return fmt.Errorf("failed to get current file path")
	}

	dir := filepath.Dir(filename)
	migrationsDir := filepath.Join(dir, "../migrations")
	// Convert backslashes to forward slashes for Windows compatibility
	migrationsDir = strings.ReplaceAll(migrationsDir, "\\", "/")

	log.WithField("dir", migrationsDir).Debug("resolved migrations directory")

	driver, err := pgx.WithInstance(sr.DB, &pgx.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsDir, dbName, driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.WithField("db", dbName).Info("migrations complete")
	return nil
}

// Create inserts a model into the corresponding db table and returns the id
// the database generated for the new record.
func (sr *SqlRepo) Create(m models.Model) (id string, err error) {
	vals := models.GetValsFromModel(m)

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		m.TableName(),
		strings.Join(models.GetColumnNames(m, true), ", "),
		placeholders(len(vals)))

	stmt, err := sr.DB.Prepare(query)
	if err != nil {
		return "", fmt.Errorf("error preparing query: %w", err)
	}
	defer stmt.Close()

	row := stmt.QueryRow(vals...)
	if err := row.Scan(&id); err != nil {
		return "", fmt.Errorf("error executing query: %w", mapError(err))
	}

	return id, nil
}

func (sr *SqlRepo) Update(m models.Model) error {
	if err := checkID(m.GetID()); err != nil {
		return err
	}
	columns := models.GetColumnNames(m, true)

	setClause := make([]string, len(columns))
	for i, c := range columns {
		setClause[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		m.TableName(),
		strings.Join(setClause, ", "),
		len(columns)+1)

	stmt, err := sr.DB.Prepare(query)
	if err != nil {
		return fmt.Errorf("error preparing query: %w", err)
	}
	defer stmt.Close()

	vals := models.GetValsFromModel(m)
	vals = append(vals, m.GetID())
	res, err := stmt.Exec(vals...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", mapError(err))
	}
	return expectAffected(res)
}

func (sr *SqlRepo) Delete(m models.Model) error {
	if err := checkID(m.GetID()); err != nil {
		return err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", m.TableName())
	stmt, err := sr.DB.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	res, err := stmt.Exec(m.GetID())
	if err != nil {
		return fmt.Errorf("error deleting record: %w", err)
	}
	return expectAffected(res)
}

// GetModelByID retrieves a model from the db by its ID and returns it. The
// model must be passed as a pointer to the desired model type.
func (sr *SqlRepo) GetModelByID(m models.Model, id string) (models.Model, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1",
		strings.Join(models.GetColumnNames(m, false), ", "),
		m.TableName())
	r := sr.DB.QueryRow(query, id)

	if err := models.ScanRowToModel(m, r); err != nil {
		return nil, mapError(err)
	}
	return m, nil
}

func (sr *SqlRepo) GetUserByID(id string) (models.User, error) {
	model, err := sr.GetModelByID(&models.User{}, id)
	if err != nil {
		return models.User{}, err
	}

	user, ok := model.(*models.User)
	if !ok {
		return models.User{}, fmt.Errorf("type assertion to User failed")
	}

	return *user, nil
}

func (sr *SqlRepo) GetEventByID(id string) (models.Event, error) {
	model, err := sr.GetModelByID(&models.Event{}, id)
	if err != nil {
		return models.Event{}, err
	}

	event, ok := model.(*models.Event)
	if !ok {
		return models.Event{}, fmt.Errorf("type assertion to Event failed")
	}

	return *event, nil
}

// QueryEvents returns the events matching the store-level query parameters
// (see buildQueryClauses). It is how callers fetch a snapshot before handing
// it to the discovery engine.
func (sr *SqlRepo) QueryEvents(queryParams map[string]string) ([]models.Event, error) {
	m := models.Event{}
	clauses, values, limit, err := buildQueryClauses(queryParams, m)
	if err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s",
		strings.Join(models.GetColumnNames(m, false), ", "),
		m.TableName(),
		clauses)

	rows, err := sr.DB.Query(query, values...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	result, err := models.ScanRowsToSliceOfModels(m, rows, limit)
	if err != nil {
		return nil, fmt.Errorf("error scanning events: %w", err)
	}

	events, ok := result.(*[]models.Event)
	if !ok {
		return nil, fmt.Errorf("type assertion to []Event failed")
	}
	return *events, nil
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// mapError translates driver errors into the repository's sentinel errors.
// Unrecognised errors are returned unchanged.
func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

func placeholders(n int) string {
	ph := make([]string, n)
	for i := 1; i <= n; i++ {
		ph[i-1] = fmt.Sprintf("$%d", i)
	}
	return strings.Join(ph, ", ")
}
