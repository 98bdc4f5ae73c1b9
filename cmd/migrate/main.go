package main

import (
	"flag"
	"log/slog"
	"os"

	"simpeg_backend/internal/platform/config"
	platformdb "simpeg_backend/internal/platform/db"
)

func main() {
	config.LoadDotEnv()

	dir := flag.String("dir", "db/migrations", "directory containing the SQL migration files")
	action := flag.String("action", platformdb.MigrateUp, "migration action: up, down or version")
	flag.Parse()

	dsn := platformdb.BuildDSN(platformdb.LoadConfigFromEnv())
	if err := platformdb.Migrate(*action, *dir, dsn); err != nil {
		slog.Error("migration failed", "action", *action, "dir", *dir, "error", err)
		os.Exit(1)
	}
	slog.Info("migration finished", "action", *action)
}
