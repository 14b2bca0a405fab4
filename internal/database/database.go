package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Target identifies one source database given on the command line.
type Target struct {
	Host     string `validate:"required,hostname_rfc1123|ip"`
	Port     int    `validate:"required,min=1,max=65535"`
	Name     string `validate:"required"`
	User     string `validate:"required"`
	Password string
}

var validate = validator.New()

// Validate checks the target before any connection is attempted.
func (t Target) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidTarget, err)
	}
	return nil
}

// Address returns host:port.
func (t Target) Address() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// String describes the target without its password.
func (t Target) String() string {
	return fmt.Sprintf("%s@%s/%s", t.User, t.Address(), t.Name)
}

// OpenAuthoritative connects to the authoritative relational database. A
// single connection is kept for the whole invocation since rows are streamed
// through one cursor.
func OpenAuthoritative(ctx context.Context, log *slog.Logger, driver string, t Target, timeout time.Duration) (*sql.DB, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	var (
		driverName string
		dsn        string
	)
	switch driver {
	case DriverMySQL:
		cfg := mysql.NewConfig()
		cfg.User = t.User
		cfg.Passwd = t.Password
		cfg.Net = "tcp"
		cfg.Addr = t.Address()
		cfg.DBName = t.Name
		cfg.Timeout = timeout
		driverName, dsn = DriverMySQL, cfg.FormatDSN()
	case DriverPostgres:
		driverName = pgxDriverName
		dsn = postgresURL(t, timeout)
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnsupportedDriver, driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpenDatabase, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s %s: %w", ErrMsgFailedToPingDatabase, t, err)
	}

	log.Debug(LogMsgConnectedToAuthoritative, "driver", driver, "target", t.String())
	return db, nil
}

func postgresURL(t Target, timeout time.Duration) string {
	q := url.Values{}
	q.Set("sslmode", DefaultPostgresSSLMode)
	if secs := int(timeout.Seconds()); secs > 0 {
		q.Set("connect_timeout", strconv.Itoa(secs))
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(t.User, t.Password),
		Host:     t.Address(),
		Path:     "/" + t.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// OpenSecondary connects to the document store and authenticates against
// authSource, or the target database when authSource is empty. Reads may be
// served by replicas.
func OpenSecondary(ctx context.Context, log *slog.Logger, t Target, authSource string, timeout time.Duration) (*mongo.Client, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if authSource == "" {
		authSource = t.Name
	}

	opts := options.Client().
		SetHosts([]string{t.Address()}).
		SetAuth(options.Credential{
			Username:   t.User,
			Password:   t.Password,
			AuthSource: authSource,
		}).
		SetReadPreference(readpref.SecondaryPreferred()).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout).
		SetMaxPoolSize(1)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpenDatabase, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.SecondaryPreferred()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%s %s: %w", ErrMsgFailedToPingDatabase, t, err)
	}

	log.Debug(LogMsgConnectedToSecondary, "target", t.String(), "auth_source", authSource)
	return client, nil
}
