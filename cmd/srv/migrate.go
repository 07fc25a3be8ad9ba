package main

import (
	"github.com/inkpost/backend/migration"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	server.loadConfig(cctx)
	server.loadLogger()
	server.loadDatabase()

	if s.configs.Env == "local" {
		return migration.AutoMigrate(s.ctx)
	}

	return migration.Migrate(s.ctx)
}
