package source

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"testing"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/osse101/userreconcile/internal/database"
	"github.com/osse101/userreconcile/internal/domain"
	"github.com/osse101/userreconcile/internal/logger"
)

const (
	testUser     = "testuser"
	testPassword = "testpass"
	testDatabase = "testdb"
	testTimeout  = 30 * time.Second
)

var seedUsers = []domain.AuthoritativeUser{
	{ID: 1, Username: strPtr("alice"), Email: strPtr("a@x.com")},
	{ID: 2, Username: strPtr("bob"), Email: strPtr("b@x.com")},
	{ID: 3, Username: strPtr("carol"), Email: strPtr("c@x.com")},
}

func skipIntegration(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
}

func splitHostPort(t *testing.T, hostport string) (string, int) {
	t.Helper()
	host, portStr, err := net.SplitHostPort(hostport)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return host, port
}

func seedAuthUser(t *testing.T, db *sql.DB, placeholders string) {
	t.Helper()
	_, err := db.Exec(`CREATE TABLE auth_user (id INTEGER PRIMARY KEY, username VARCHAR(150), email VARCHAR(254))`)
	require.NoError(t, err)
	for _, u := range seedUsers {
		_, err := db.Exec(`INSERT INTO auth_user (id, username, email) VALUES `+placeholders, u.ID, u.Username, u.Email)
		require.NoError(t, err)
	}
}

func streamAll(t *testing.T, src AuthoritativeSource) []domain.AuthoritativeUser {
	t.Helper()
	var got []domain.AuthoritativeUser
	err := src.StreamUsers(context.Background(), 2, func(batch []domain.AuthoritativeUser) error {
		got = append(got, batch...)
		return nil
	})
	require.NoError(t, err)
	return got
}

func TestIntegration_MySQLAuthoritative(t *testing.T) {
	skipIntegration(t)
	ctx := context.Background()

	container, err := mysql.Run(ctx, "mysql:8.0.36",
		mysql.WithDatabase(testDatabase),
		mysql.WithUsername(testUser),
		mysql.WithPassword(testPassword),
	)
	if err != nil {
		t.Skipf("failed to start mysql container: %v", err)
	}
	defer testcontainers.TerminateContainer(container)

	dsn, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	cfg, err := mysqldriver.ParseDSN(dsn)
	require.NoError(t, err)
	host, port := splitHostPort(t, cfg.Addr)

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	db, err := database.OpenAuthoritative(ctx, log, database.DriverMySQL, database.Target{
		Host: host, Port: port, Name: testDatabase, User: testUser, Password: testPassword,
	}, testTimeout)
	require.NoError(t, err)
	defer db.Close()
	assert.Contains(t, logs.String(), database.LogMsgConnectedToAuthoritative)
	assert.NotContains(t, logs.String(), testPassword)

	seedAuthUser(t, db, "(?, ?, ?)")

	src, err := NewSQLAuthoritative(db, "", "mysql")
	require.NoError(t, err)
	assert.ElementsMatch(t, seedUsers, streamAll(t, src))
}

func TestIntegration_PostgresAuthoritative(t *testing.T) {
	skipIntegration(t)
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(testDatabase),
		postgres.WithUsername(testUser),
		postgres.WithPassword(testPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(testTimeout)),
	)
	if err != nil {
		t.Skipf("failed to start postgres container: %v", err)
	}
	defer testcontainers.TerminateContainer(container)

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	u, err := url.Parse(connStr)
	require.NoError(t, err)
	host, port := splitHostPort(t, u.Host)

	db, err := database.OpenAuthoritative(ctx, logger.Discard(), database.DriverPostgres, database.Target{
		Host: host, Port: port, Name: testDatabase, User: testUser, Password: testPassword,
	}, testTimeout)
	require.NoError(t, err)
	defer db.Close()

	seedAuthUser(t, db, "($1, $2, $3)")

	src, err := NewSQLAuthoritative(db, "public.auth_user", "postgres")
	require.NoError(t, err)
	assert.ElementsMatch(t, seedUsers, streamAll(t, src))
}

func TestIntegration_MongoSecondary(t *testing.T) {
	skipIntegration(t)
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:6",
		mongodb.WithUsername(testUser),
		mongodb.WithPassword(testPassword),
	)
	if err != nil {
		t.Skipf("failed to start mongodb container: %v", err)
	}
	defer testcontainers.TerminateContainer(container)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	u, err := url.Parse(uri)
	require.NoError(t, err)
	host, port := splitHostPort(t, u.Host)

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	client, err := database.OpenSecondary(ctx, log, database.Target{
		Host: host, Port: port, Name: testDatabase, User: testUser, Password: testPassword,
	}, "admin", testTimeout)
	require.NoError(t, err)
	defer client.Disconnect(ctx)
	assert.Contains(t, logs.String(), database.LogMsgConnectedToSecondary)

	coll := client.Database(testDatabase).Collection(DefaultSecondaryCollection)
	_, err = coll.InsertMany(ctx, []interface{}{
		bson.D{{Key: "_id", Value: "1"}, {Key: FieldExternalID, Value: "1"}, {Key: FieldUsername, Value: "alice"}, {Key: FieldEmail, Value: "a@x.com"}},
		bson.D{{Key: "_id", Value: "2"}, {Key: FieldExternalID, Value: int32(2)}, {Key: FieldUsername, Value: "bob"}, {Key: FieldEmail, Value: "b@x.com"},
			{Key: FieldReadStates, Value: bson.A{bson.D{{Key: "course_id", Value: "c1"}}}}},
	})
	require.NoError(t, err)

	var got []domain.SecondaryUser
	src := NewMongoSecondary(coll, "mongo")
	err = src.EachUser(ctx, func(u domain.SecondaryUser) error {
		got = append(got, u)
		return nil
	})

	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.SecondaryUser{
		{ExternalID: 1, Username: strPtr("alice"), Email: strPtr("a@x.com")},
		{ExternalID: 2, Username: strPtr("bob"), Email: strPtr("b@x.com"), ActivityCount: 1},
	}, got)
}
