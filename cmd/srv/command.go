package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Shelfmark"
	app.Usage = "Reading tracker backend"
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the api service",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `Serves every http endpoint: auth, catalog, shelves, communities, statistics.`,
		},
		{
			Action:      server.migrate,
			Name:        "migrate",
			Usage:       "Migrate database tables",
			Flags:       []cli.Flag{},
			Category:    "Database",
			Description: `Creates or updates the database schema and exits.`,
		},
	}

	s.app = app
}
