// seed-data loads building fixture data into the database from a YAML file.
//
// The fixture file holds buildings with nested units, contractors, and users.
// Rows are upserted by id so the loader is safe to re-run against a database
// that already holds an earlier version of the same fixtures.
//
// Usage: go run ./scripts/seed-data <fixtures.yaml>
//
// Database connection: DATABASE_URL, or the standard PG* environment
// variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"gopkg.in/yaml.v3"
)

type fixtureFile struct {
	Buildings   []buildingFixture   `yaml:"buildings"`
	Contractors []contractorFixture `yaml:"contractors"`
	Users       []userFixture       `yaml:"users"`
}

type buildingFixture struct {
	ID        uuid.UUID     `yaml:"id"`
	Slug      string        `yaml:"slug"`
	Name      string        `yaml:"name"`
	Address   string        `yaml:"address"`
	City      string        `yaml:"city"`
	State     string        `yaml:"state"`
	Zip       string        `yaml:"zip"`
	YearBuilt int           `yaml:"year_built"`
	Zoning    string        `yaml:"zoning"`
	Floors    int           `yaml:"floors"`
	UnitCount int           `yaml:"unit_count"`
	TMK       string        `yaml:"tmk"`
	Units     []unitFixture `yaml:"units"`
}

type unitFixture struct {
	ID           uuid.UUID `yaml:"id"`
	UnitNumber   string    `yaml:"unit_number"`
	OwnerName    string    `yaml:"owner_name"`
	Floor        int       `yaml:"floor"`
	Bedrooms     int       `yaml:"bedrooms"`
	Bathrooms    float64   `yaml:"bathrooms"`
	SquareFeet   int       `yaml:"square_feet"`
	ParcelNumber string    `yaml:"parcel_number"`
}

type contractorFixture struct {
	ID           uuid.UUID `yaml:"id"`
	CompanyName  string    `yaml:"company_name"`
	ContactName  string    `yaml:"contact_name"`
	ContactPhone string    `yaml:"contact_phone"`
	ContactEmail string    `yaml:"contact_email"`
	License      string    `yaml:"license"`
	Tier         string    `yaml:"tier"`
}

type userFixture struct {
	ID          uuid.UUID `yaml:"id"`
	DisplayName string    `yaml:"display_name"`
	Role        string    `yaml:"role"`
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: seed-data <fixtures.yaml>")
		os.Exit(1)
	}

	fixtures, err := loadFixtures(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load fixtures: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	if err := seed(ctx, conn, fixtures); err != nil {
		fmt.Fprintf(os.Stderr, "seeding failed: %v\n", err)
		os.Exit(1)
	}
}

func loadFixtures(path string) (*fixtureFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fixtures fixtureFile
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &fixtures, nil
}

func seed(ctx context.Context, conn *pgx.Conn, fixtures *fixtureFile) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, u := range fixtures.Users {
		if _, err := tx.Exec(ctx, `
			INSERT INTO users (id, display_name, role)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET display_name = $2, role = $3
		`, u.ID, u.DisplayName, u.Role); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.ID, err)
		}
	}

	for _, c := range fixtures.Contractors {
		if _, err := tx.Exec(ctx, `
			INSERT INTO contractors (id, company_name, contact_name, contact_phone, contact_email, license, tier)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET
				company_name = $2, contact_name = $3, contact_phone = $4,
				contact_email = $5, license = $6, tier = $7
		`, c.ID, c.CompanyName, c.ContactName, c.ContactPhone, c.ContactEmail, c.License, c.Tier); err != nil {
			return fmt.Errorf("failed to seed contractor %s: %w", c.ID, err)
		}
	}

	for _, b := range fixtures.Buildings {
		if _, err := tx.Exec(ctx, `
			INSERT INTO buildings (id, slug, name, address, city, state, zip, year_built, zoning, floors, unit_count, tmk)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (id) DO UPDATE SET
				slug = $2, name = $3, address = $4, city = $5, state = $6,
				zip = $7, year_built = $8, zoning = $9, floors = $10,
				unit_count = $11, tmk = $12
		`, b.ID, b.Slug, b.Name, b.Address, b.City, b.State, b.Zip,
			b.YearBuilt, b.Zoning, b.Floors, b.UnitCount, b.TMK); err != nil {
			return fmt.Errorf("failed to seed building %s: %w", b.Slug, err)
		}

		for _, u := range b.Units {
			if _, err := tx.Exec(ctx, `
				INSERT INTO units (id, building_id, unit_number, owner_name, floor, bedrooms, bathrooms, square_feet, parcel_number)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				ON CONFLICT (id) DO UPDATE SET
					unit_number = $3, owner_name = $4, floor = $5,
					bedrooms = $6, bathrooms = $7, square_feet = $8,
					parcel_number = $9
			`, u.ID, b.ID, u.UnitNumber, u.OwnerName, u.Floor,
				u.Bedrooms, u.Bathrooms, u.SquareFeet, u.ParcelNumber); err != nil {
				return fmt.Errorf("failed to seed unit %s/%s: %w", b.Slug, u.UnitNumber, err)
			}
		}

		fmt.Printf("seeded %s (%d units)\n", b.Slug, len(b.Units))
	}

	return tx.Commit(ctx)
}
