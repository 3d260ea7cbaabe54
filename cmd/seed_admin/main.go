// seed_admin generates a SQL script that bootstraps the first clinic and its
// owner account, with the password already bcrypt-hashed.
//
// Usage: go run ./cmd/seed_admin -clinic "City Clinic" -name "Dr. Rao" -email owner@clinic.com -password secret123
// Writes: internal/infrastructure/postgres/migrations/002_seed_owner.sql
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/plan"
)

func main() {
	clinicName := flag.String("clinic", "", "clinic display name")
	ownerName := flag.String("name", "", "owner full name")
	email := flag.String("email", "", "owner login email")
	password := flag.String("password", "", "owner password (min 8 chars)")
	trialDays := flag.Int("trial-days", 14, "trial period length in days")
	flag.Parse()

	if *clinicName == "" || *ownerName == "" || *email == "" {
		flag.Usage()
		os.Exit(1)
	}
	if len(*password) < 8 {
		fmt.Fprintln(os.Stderr, "password must be at least 8 characters")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}

	clinicID := uuid.NewString()
	ownerID := uuid.NewString()
	now := time.Now().UTC()
	trialEnds := now.AddDate(0, 0, *trialDays)

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_owner.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create file: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	fmt.Fprintf(out, "-- Bootstrap clinic and owner account\n")
	fmt.Fprintf(out, "-- Generated %s\n\n", now.Format("2006-01-02"))

	fmt.Fprintf(out, "INSERT INTO clinics (id, name, plan, subscription_status, trial_started_at, trial_ends_at, created_at, updated_at)\n")
	fmt.Fprintf(out, "VALUES ('%s', '%s', '%s', '%s', '%s', '%s', now(), now())\n",
		clinicID, escapeSQL(*clinicName), plan.Trial, plan.StatusTrial,
		now.Format(time.RFC3339), trialEnds.Format(time.RFC3339))
	fmt.Fprintf(out, "ON CONFLICT (id) DO NOTHING;\n\n")

	fmt.Fprintf(out, "INSERT INTO users (id, clinic_id, full_name, email, password_hash, role, status, created_at, updated_at)\n")
	fmt.Fprintf(out, "VALUES ('%s', '%s', '%s', '%s', '%s', '%s', 'active', now(), now())\n",
		ownerID, clinicID, escapeSQL(*ownerName), escapeSQL(*email), string(hash), entity.RoleDoctor)
	fmt.Fprintf(out, "ON CONFLICT (email) DO NOTHING;\n\n")

	fmt.Fprintf(out, "UPDATE clinics SET owner_id = '%s' WHERE id = '%s';\n", ownerID, clinicID)

	fmt.Printf("Generated %s: clinic %s, owner %s\n", outPath, clinicID, *email)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
