package main

import "github.com/urfave/cli/v2"

var configFlag = &cli.StringFlag{
	Name:  "config",
	Usage: "Path of the TOML configuration file",
	Value: "config.toml",
}

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Inkpost"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{configFlag},
			Category:    "Api",
			Description: `Used to start the main service including all apis.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Apply database migrations",
			Flags:       []cli.Flag{configFlag},
			Category:    "Database",
			Description: `Used to bring the database schema up to date.`,
		},
	}

	s.app = app
}
