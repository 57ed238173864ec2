package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/synternet/data-layer-sdk/pkg/options"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/synternet/launchpad-indexer/internal/repository"
	"github.com/synternet/launchpad-indexer/internal/repository/pg"
	"github.com/synternet/launchpad-indexer/internal/repository/sqlite"
)

var (
	flagVerbose       *bool
	flagNatsUrls      *string
	flagUserCreds     *string
	flagNkey          *string
	flagNatsAccNkey   *string
	flagJWT           *string
	flagTLSClientCert *string
	flagTLSKey        *string
	flagCACert        *string

	flagDbHost     *string
	flagDbPort     *uint
	flagDbUser     *string
	flagDbPassword *string
	flagDbName     *string

	database *repository.Repository
)

// loadDotEnv reads .env files into the environment. Variables that are already set win.
func loadDotEnv(filenames ...string) error {
	return godotenv.Load(filenames...)
}

// Package variables are initialized before any init function, so flag defaults
// in every file of the package see .env values.
var dotEnvErr = loadDotEnv()

func setErrorHandlers(conn *nats.Conn) {
	if conn == nil {
		return
	}

	conn.SetErrorHandler(func(c *nats.Conn, s *nats.Subscription, err error) {
		slog.Error("NATS error", "err", err)
	})
	conn.SetDisconnectHandler(func(c *nats.Conn) {
		slog.Error("NATS disconnected", "err", c.LastError())
	})
}

// connectNats is called only by commands that consume events from NATS.
func connectNats() (*nats.Conn, error) {
	// Sacrifice some security for the sake of user experience by allowing to
	// supply NATS account NKey instead of passing created user NKey and user JWS.
	if *flagNatsAccNkey != "" {
		nkey, jwt, err := CreateUser(*flagNatsAccNkey)
		if err != nil {
			return nil, fmt.Errorf("failed to generate user JWT: %w", err)
		}
		flagNkey = nkey
		flagJWT = jwt
	}

	conn, err := options.MakeNats("Launchpad Indexer", *flagNatsUrls, *flagUserCreds, *flagNkey, *flagJWT, *flagCACert, *flagTLSClientCert, *flagTLSKey)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS %s: %w", *flagNatsUrls, err)
	}
	setErrorHandlers(conn)
	return conn, nil
}

func openDatabase(logger *slog.Logger) (*repository.Repository, error) {
	var (
		db  *gorm.DB
		err error
	)
	if *flagDbName == "sqlite" {
		db, err = sqlite.New(*flagDbHost)
	} else {
		db, err = pg.New(*flagDbHost, *flagDbPort, *flagDbUser, *flagDbPassword, *flagDbName)
	}
	if err != nil {
		return nil, err
	}
	return repository.New(db, logger)
}

var rootCmd = &cobra.Command{
	Use:   "launchpad-indexer",
	Short: "Indexes launchpad contract events into queryable state",
	Long:  ``,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if *flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		switch {
		case dotEnvErr == nil:
		case errors.Is(dotEnvErr, fs.ErrNotExist):
			slog.Debug("No .env file found")
		default:
			slog.Warn("Failed loading .env file", "err", dotEnvErr)
		}

		repo, err := openDatabase(slog.Default())
		if err != nil {
			panic(fmt.Errorf("failed to open database %s: %w", *flagDbName, err))
		}
		database = repo
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if database == nil {
			return
		}
		database.Close()
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	const (
		DB_HOST     = "DB_HOST"
		DB_PORT     = "DB_PORT"
		DB_USER     = "DB_USER"
		DB_PASSWORD = "DB_PASSW"
		DB_NAME     = "DB_NAME"
	)
	setDefault(DB_HOST, "postgres")
	setDefault(DB_PORT, "5432")
	setDefault(DB_USER, "launchpad_user")
	setDefault(DB_NAME, "launchpad")

	flagNatsUrls = rootCmd.PersistentFlags().StringP("nats-url", "n", os.Getenv("NATS_URL"), "NATS server URLs (separated by comma)")
	flagNatsAccNkey = rootCmd.PersistentFlags().StringP("nats-acc-nkey", "", os.Getenv("NATS_ACC_NKEY"), "NATS account NKey (seed)")
	flagUserCreds = rootCmd.PersistentFlags().StringP("nats-creds", "c", os.Getenv("NATS_CREDS"), "NATS User Credentials File (combined JWT and NKey file) ")
	flagJWT = rootCmd.PersistentFlags().StringP("nats-jwt", "w", os.Getenv("NATS_JWT"), "NATS JWT")
	flagNkey = rootCmd.PersistentFlags().StringP("nats-nkey", "k", os.Getenv("NATS_NKEY"), "NATS NKey")

	flagTLSKey = rootCmd.PersistentFlags().StringP("client-key", "", os.Getenv("CLIENT_KEY"), "NATS Private key file for client certificate")
	flagTLSClientCert = rootCmd.PersistentFlags().StringP("client-cert", "", os.Getenv("CLIENT_CERT"), "NATS TLS client certificate file")
	flagCACert = rootCmd.PersistentFlags().StringP("ca-cert", "", os.Getenv("CA_CERT"), "NATS CA certificate file")

	flagDbHost = rootCmd.PersistentFlags().StringP("db-host", "", os.Getenv(DB_HOST), "Database Host (filepath in case of `sqlite` `db-name`)")
	flagDbPort = rootCmd.PersistentFlags().UintP("db-port", "", uint(envUint(DB_PORT, 5432)), "Database Port")
	flagDbUser = rootCmd.PersistentFlags().StringP("db-user", "", os.Getenv(DB_USER), "Database User")
	flagDbName = rootCmd.PersistentFlags().StringP("db-name", "", os.Getenv(DB_NAME), "Database Name (specify `sqlite` for SQLite database)")
	flagDbPassword = rootCmd.PersistentFlags().StringP("db-passw", "", os.Getenv(DB_PASSWORD), "Database Password")

	_, verbosePresent := os.LookupEnv("VERBOSE")

	flagVerbose = rootCmd.PersistentFlags().BoolP("verbose", "v", verbosePresent, "Verbose output")
}
