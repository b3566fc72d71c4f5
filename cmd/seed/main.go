// Command seed provisions the admin credential row and, optionally, a small
// sample catalog. Run the server once first so the schema migrations have
// created the tables.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/JantaElectricals/JE-Backend/internal/catalog"
)

var (
	dsn      = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (default: env DATABASE_URL)")
	password = flag.String("password", os.Getenv("ADMIN_PASSWORD"), "Initial admin password (default: env ADMIN_PASSWORD)")
	sample   = flag.Bool("sample", false, "Also insert a sample catalog")
	dryRun   = flag.Bool("dry-run", false, "Report what would be written; no DB writes")
)

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()

	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		fatalf("ping database: %v", err)
	}

	if err := seedCredential(db); err != nil {
		fatalf("seed credential: %v", err)
	}

	if *sample {
		if err := seedCatalog(db); err != nil {
			fatalf("seed catalog: %v", err)
		}
	}

	fmt.Println("seed complete")
}

func seedCredential(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM store_admin.credentials`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		fmt.Println("credential row exists, skipping")
		return nil
	}

	if *password == "" {
		return fmt.Errorf("--password not provided and ADMIN_PASSWORD not set")
	}
	if *dryRun {
		fmt.Println("would insert credential row")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(
		`INSERT INTO store_admin.credentials (id, password_hash, updated_at) VALUES ($1, $2, now())`,
		uuid.New().String(), string(hashed),
	)
	if err == nil {
		fmt.Println("inserted credential row")
	}
	return err
}

var sampleCatalog = map[string][]struct {
	name        string
	description string
	price       float64
}{
	"Coolers": {
		{"Desert Cooler 60L", "High-airflow desert cooler for large rooms.", 7499},
		{"Tower Cooler 35L", "Slim tower cooler with honeycomb pads.", 5299},
	},
	"Ceiling Fans": {
		{"Deco Fan 1200mm", "Decorative ceiling fan, double ball bearing.", 1849},
	},
	"Wiring & Cables": {
		{"FR Copper Wire 90m", "1.5 sq mm flame-retardant copper wire coil.", 1299},
	},
}

func seedCatalog(db *sql.DB) error {
	for categoryName, products := range sampleCatalog {
		categoryID := uuid.New().String()
		categorySlug := catalog.Slugify(categoryName)

		if *dryRun {
			fmt.Printf("would insert category %q (%s) with %d products\n",
				categoryName, categorySlug, len(products))
			continue
		}

		_, err := db.Exec(`
			INSERT INTO catalog.categories (id, name, slug, created_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT DO NOTHING
		`, categoryID, categoryName, categorySlug)
		if err != nil {
			return err
		}

		// The insert may have been a no-op on rerun; resolve the real id.
		if err := db.QueryRow(
			`SELECT id FROM catalog.categories WHERE slug = $1`, categorySlug,
		).Scan(&categoryID); err != nil {
			return err
		}

		for _, p := range products {
			_, err := db.Exec(`
				INSERT INTO catalog.products (id, name, slug, description, price, category_id, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, now())
				ON CONFLICT DO NOTHING
			`, uuid.New().String(), p.name, catalog.Slugify(p.name), p.description, p.price, categoryID)
			if err != nil {
				return err
			}
		}
		fmt.Printf("seeded category %q with %d products\n", categoryName, len(products))
	}
	return nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
