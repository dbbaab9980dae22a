package main

import (
	"log"

	"github.com/urfave/cli/v2"

	"github.com/JiSuMun/New-zigoohang/migration"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()

	if err := migration.Migrate(s.ctx); err != nil {
		return err
	}

	log.Println("migrations applied")
	return nil
}
