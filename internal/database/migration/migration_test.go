package migration

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"docregistry/internal/catalog"
	"docregistry/internal/model"
)

func init() {
	hashCost = bcrypt.MinCost
}

func testSeed() catalog.Seed {
	return catalog.Seed{
		Catalogs: model.Catalogs{
			Departments:      []string{"Pleno", "Presidente"},
			ExternalEntities: []string{"GETESA"},
		},
		Users: []catalog.User{{Username: "admin", Password: "admin123", Role: "Admin", Name: "Administrador Sistema"}},
	}
}

func countRows(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func TestEnsureMigrated_FreshDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	core, logs := observer.New(zap.InfoLevel)

	mock.ExpectQuery("SELECT to_regclass").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	for range steps {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM departments").WillReturnRows(countRows(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO departments").WithArgs("Pleno", 0).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO departments").WithArgs("Presidente", 1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM external_entities").WillReturnRows(countRows(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO external_entities").WithArgs("GETESA", 0).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").WillReturnRows(countRows(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").
		WithArgs("admin", bcryptOf("admin123"), "Admin", "Administrador Sistema").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = EnsureMigrated(context.Background(), db, zap.New(core), "db.local", testSeed())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, len(steps), logs.FilterMessage("db_migration_step").Len())
	assert.Equal(t, 1, logs.FilterMessage("db_migration_success").Len())
	assert.Equal(t, 3, logs.FilterMessage("db_seed").Len())
}

func TestEnsureMigrated_ExistingSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	core, logs := observer.New(zap.InfoLevel)

	mock.ExpectQuery("SELECT to_regclass").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM departments").WillReturnRows(countRows(13))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM external_entities").WillReturnRows(countRows(49))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").WillReturnRows(countRows(2))

	err = EnsureMigrated(context.Background(), db, zap.New(core), "db.local", testSeed())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, 1, logs.FilterMessage("db_migration_skip").Len())
	assert.Zero(t, logs.FilterMessage("db_seed").Len())
}

func TestEnsureMigrated_StepFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	core, logs := observer.New(zap.InfoLevel)

	mock.ExpectQuery("SELECT to_regclass").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS documents").WillReturnError(errors.New("permission denied"))

	err = EnsureMigrated(context.Background(), db, zap.New(core), "db.local", testSeed())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration step create_table_documents failed")

	failed := logs.FilterMessage("db_migration_failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "create_table_documents", failed[0].ContextMap()["migration_step"])
}

func TestEnsureMigrated_SentinelFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT to_regclass").WillReturnError(errors.New("connection reset"))

	err = EnsureMigrated(context.Background(), db, zap.NewNop(), "db.local", testSeed())
	assert.ErrorContains(t, err, "failed to check sentinel table")
}

func TestSeed_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM departments").WillReturnRows(countRows(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO departments").WithArgs("Pleno", 0).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO departments").WithArgs("Presidente", 1).WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	err = Seed(context.Background(), db, zap.NewNop(), testSeed())
	assert.ErrorContains(t, err, `seed departments "Presidente": duplicate key`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// bcryptOf matches a bcrypt hash of the given password.
type bcryptOf string

func (b bcryptOf) Match(v driver.Value) bool {
	h, ok := v.(string)
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(h), []byte(b)) == nil
}
