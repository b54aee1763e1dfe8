package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/localnerve/scriptscope/data"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a scriptscope database container with the environment variables from the .env file.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  testcontainers -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	// The container is handed over on a channel; startup failure feeds the
	// signal path so main always exits through the teardown branch
	containers := make(chan testcontainers.Container, 1)
	go func() {
		dbContainer, err := startDatabase()
		if err != nil {
			log.Printf("Failed to create database container: %v\n", err)
			close(containers)
			sigs <- syscall.SIGTERM
			return
		}
		containers <- dbContainer
	}()

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating database container...\n", sig)
	if dbContainer, ok := <-containers; ok && dbContainer != nil {
		if err := dbContainer.Terminate(context.Background()); err != nil {
			log.Printf("Failed to terminate database container: %v\n", err)
		}
	}
}

// startDatabase runs a MariaDB container, creates the scriptscope schema from
// the embedded DDL, and prints the app-user DSN for .env.
func startDatabase() (testcontainers.Container, error) {
	ctx := context.Background()

	image := getenv("DB_IMAGE", "mariadb:11")
	database := getenv("DB_DATABASE", "scriptscope")
	rootPassword := getenv("DB_ROOT_PASSWORD", uuid.NewString())

	tcpDbPort, err := nat.NewPort("tcp", getenv("DB_PORT", "3306"))
	if err != nil {
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpDbPort)},
			Env: map[string]string{
				"MARIADB_ROOT_PASSWORD": rootPassword,
				"MARIADB_DATABASE":      database,
			},
			WaitingFor: wait.ForListeningPort(tcpDbPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start database container: %w", err)
	}

	host, _ := dbContainer.Host(ctx)
	port, _ := dbContainer.MappedPort(ctx, tcpDbPort)

	if err := initSchema(host, port.Port(), rootPassword, database); err != nil {
		_ = dbContainer.Terminate(ctx)
		return nil, err
	}

	log.Printf("Database ready: DB_TYPE=mariadb DB_HOST=%s DB_PORT=%s DB_DATABASE=%s DB_USER=scriptscope", host, port.Port(), database)

	return dbContainer, nil
}

// initSchema applies the embedded DDL as root
func initSchema(host, port, rootPassword, database string) error {
	dsn := fmt.Sprintf("root:%s@tcp(%s:%s)/%s?multiStatements=true", rootPassword, host, port, database)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open root connection: %w", err)
	}
	defer db.Close()

	for _, ddl := range []string{data.InitdbMariaDBTables, data.InitdbMariaDBPrivileges} {
		for _, stmt := range strings.Split(ddl, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("failed to execute init statement: %w", err)
			}
		}
	}
	return nil
}

func getenv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
