// backend-go/cmd/seed/main.go
package main

import (
	"fmt"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newCloudDBFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "cloud-db-url",
		Usage:    "Cloud database DSN (user:pass@tcp(host:port)/dbname)",
		Required: true,
		EnvVars:  []string{"CLOUD_DATABASE_URL"},
	}
}

func newLocalDBFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "local-db-url",
		Usage:    "Local database DSN (user:pass@tcp(host:port)/dbname)",
		Required: true,
		EnvVars:  []string{"LOCAL_DATABASE_URL"},
	}
}

func openDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", dsn+"?parseTime=true")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Create the dispatch schema and seed master data",
		Commands: []*cli.Command{
			{
				Name:  "schema",
				Usage: "Create tables in the cloud and local databases",
				Flags: []cli.Flag{
					newCloudDBFlag(),
					newLocalDBFlag(),
				},
				Action: runSchema,
			},
			{
				Name:  "master",
				Usage: "Seed master data (categories, pack sizes, products, a demo store)",
				Flags: []cli.Flag{
					newCloudDBFlag(),
					newLocalDBFlag(),
				},
				Action: runMaster,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runSchema(c *cli.Context) error {
	cloud, err := openDB(c.String("cloud-db-url"))
	if err != nil {
		return err
	}
	defer cloud.Close()

	local, err := openDB(c.String("local-db-url"))
	if err != nil {
		return err
	}
	defer local.Close()

	for _, stmt := range cloudSchema {
		if _, err := cloud.Exec(stmt); err != nil {
			return fmt.Errorf("cloud schema: %w", err)
		}
	}
	for _, stmt := range localSchema {
		if _, err := local.Exec(stmt); err != nil {
			return fmt.Errorf("local schema: %w", err)
		}
	}

	log.Println("schema created")
	return nil
}

func runMaster(c *cli.Context) error {
	cloud, err := openDB(c.String("cloud-db-url"))
	if err != nil {
		return err
	}
	defer cloud.Close()

	local, err := openDB(c.String("local-db-url"))
	if err != nil {
		return err
	}
	defer local.Close()

	if err := seedCatalog(cloud); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}
	if err := seedStores(local); err != nil {
		return fmt.Errorf("seeding stores: %w", err)
	}
	if err := seedLocalProducts(local); err != nil {
		return fmt.Errorf("seeding local products: %w", err)
	}

	log.Println("master data seeded")
	return nil
}
