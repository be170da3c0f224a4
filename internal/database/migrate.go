package database

import (
	"embed"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"

	"venturelink/internal/middleware"
)

// Migration is one versioned SQL schema change. Files follow the
// NNNNNN_name.up.sql / NNNNNN_name.down.sql convention under migrations/.
type Migration struct {
	Version    int
	Name       string
	UpScript   string
	DownScript string
}

//go:embed migrations/*.sql
var migrationFS embed.FS

var migrations []Migration

func init() {
	if err := RegisterMigrations(migrationFS); err != nil {
		panic(fmt.Sprintf("embedded migrations are broken: %v", err))
	}
}

// RegisterMigrations loads every up/down pair from the migrations directory
// of efs into the registry, ordered by version.
func RegisterMigrations(efs embed.FS) error {
	entries, err := efs.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		base := strings.TrimSuffix(entry.Name(), ".up.sql")
		versionRaw, name, found := strings.Cut(base, "_")
		if !found {
			middleware.Logger.Warn("skipping migration with unparseable file name",
				slog.String("file", entry.Name()))
			continue
		}
		version, err := strconv.Atoi(versionRaw)
		if err != nil {
			middleware.Logger.Warn("skipping migration with non-numeric version",
				slog.String("file", entry.Name()))
			continue
		}

		upBytes, err := efs.ReadFile(path.Join("migrations", entry.Name()))
		if err != nil {
			return fmt.Errorf("read up migration %s: %w", entry.Name(), err)
		}
		downName := base + ".down.sql"
		downBytes, err := efs.ReadFile(path.Join("migrations", downName))
		if err != nil {
			return fmt.Errorf("migration %s has no down script: %w", base, err)
		}

		migrations = append(migrations, Migration{
			Version:    version,
			Name:       name,
			UpScript:   string(upBytes),
			DownScript: string(downBytes),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return nil
}

// GetMigrations returns all registered migrations in version order.
func GetMigrations() []Migration {
	return migrations
}

// GetMigrationByVersion returns the migration with the given version, or nil.
func GetMigrationByVersion(version int) *Migration {
	for i := range migrations {
		if migrations[i].Version == version {
			return &migrations[i]
		}
	}
	return nil
}

func (m *Migration) String() string {
	return fmt.Sprintf("%06d_%s", m.Version, m.Name)
}
