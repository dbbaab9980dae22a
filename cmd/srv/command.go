package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "planethelper"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{configFlag},
			Category:    "Api",
			Description: `Start the main api service, including the chat websocket.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Run database migrations",
			Flags:       []cli.Flag{configFlag},
			Category:    "Database",
			Description: `Apply all pending database migrations and exit.`,
		},
	}

	s.app = app
}

var configFlag = &cli.StringFlag{
	Name:    "config",
	Usage:   "Path of a toml file overriding environment configuration",
	EnvVars: []string{"CONFIG_FILE"},
}
