package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MigrationFile describes a freshly created up/down pair
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	UpPath      string
	DownPath    string
}

// CreateMigration writes an empty up/down SQL pair into migrationsDir. The
// version prefix is the creation timestamp so golang-migrate applies files
// in the order they were written.
func CreateMigration(migrationsDir, name, description string) (*MigrationFile, error) {
	if err := os.MkdirAll(migrationsDir, 0755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	now := time.Now()
	version := now.Format("20060102150405")
	base := fmt.Sprintf("%s_%s", version, sanitizeName(name))

	mf := &MigrationFile{
		Version:     version,
		Name:        name,
		Description: description,
		UpPath:      filepath.Join(migrationsDir, base+".up.sql"),
		DownPath:    filepath.Join(migrationsDir, base+".down.sql"),
	}

	upHeader := migrationHeader(name, description, now)
	if err := os.WriteFile(mf.UpPath, []byte(upHeader), 0644); err != nil {
		return nil, fmt.Errorf("write up migration: %w", err)
	}

	downDescription := ""
	if description != "" {
		downDescription = "Rollback for " + description
	}
	downHeader := migrationHeader(name+" (rollback)", downDescription, now)
	if err := os.WriteFile(mf.DownPath, []byte(downHeader), 0644); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("write down migration: %w", err)
	}

	return mf, nil
}

func migrationHeader(name, description string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "-- Migration: %s\n", name)
	fmt.Fprintf(&b, "-- Created: %s\n", now.Format(time.RFC3339))
	if description != "" {
		fmt.Fprintf(&b, "-- Description: %s\n", description)
	}
	b.WriteString("\n")
	return b.String()
}

// sanitizeName lowercases the migration name and collapses separators so it
// is safe as a file name component
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			s := b.String()
			if len(s) > 0 && !strings.HasSuffix(s, "_") {
				b.WriteByte('_')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// ListMigrations returns the base names of the migration pairs in a
// directory, sorted by version. A missing directory is an empty list, not
// an error.
func ListMigrations(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	migrations := make([]string, 0)
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		base, ok := strings.CutSuffix(entry.Name(), ".up.sql")
		if !ok || seen[base] {
			continue
		}
		seen[base] = true
		migrations = append(migrations, base)
	}

	sort.Strings(migrations)
	return migrations, nil
}
