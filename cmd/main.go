package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"brokerapi/cmd/quotes"
	"brokerapi/cmd/seed"
	"brokerapi/src/database"
	"brokerapi/src/server"
)

var Version string

func main() {
	app := cli.NewApp()
	app.Name = "Broker CMD"
	app.Usage = "The broker API command line interface"

	app.Commands = []cli.Command{
		serveCMD,
		seedCMD,
		quotesCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	serveCMD = cli.Command{
		Name:        "serve",
		Usage:       "run the broker API server",
		Action:      serveAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Run the HTTP API server`,
	}
	seedCMD = cli.Command{
		Name:        "seed",
		Usage:       "load demo data",
		Action:      seedAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Insert demo users, instruments and market data`,
	}
	quotesCMD = cli.Command{
		Name:      "quotes",
		Usage:     "sync daily close prices",
		Action:    quotesAction,
		ArgsUsage: "",
		Flags: []cli.Flag{
			cli.BoolFlag{
				Name:  "loop",
				Usage: "keep refreshing on the configured period instead of running once",
			},
		},
		Description: `Fetch end-of-day quotes and append them to the marketdata series`,
	}
)

func serveAction(_ *cli.Context) error {
	logrus.Info("Starting broker API server")

	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	server.StartServer(server.GetConfig().Port)
	return nil
}

func seedAction(_ *cli.Context) error {
	logrus.Info("Starting seed CMD")
	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	seeder := &seed.Seeder{
		Log: logrus.WithField("cmd", "seed"),
		DB:  database.MainDB,
	}

	if err := seeder.Start(); err != nil {
		logrus.WithError(err).Error("Starting seed cmd")
		return err
	}

	return nil
}

func quotesAction(c *cli.Context) error {
	logrus.Info("Starting quotes sync CMD")
	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	sync := &quotes.Sync{
		Log:  logrus.WithField("cmd", "quotes"),
		DB:   database.MainDB,
		Loop: c.Bool("loop"),
	}

	if err := sync.Start(); err != nil {
		logrus.WithError(err).Error("Starting quotes cmd")
		return err
	}

	return nil
}
