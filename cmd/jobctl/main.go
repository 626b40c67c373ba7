package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/mitchellh/cli"

	"jobboard/internal/client"
	"jobboard/internal/cmd"
	"jobboard/internal/config"
)

var version = "0.1.0"

func main() {
	ui := &cli.ColoredUi{
		ErrorColor: cli.UiColorRed,
		WarnColor:  cli.UiColorYellow,
		Ui: &cli.BasicUi{
			Writer:      os.Stdout,
			Reader:      os.Stdin,
			ErrorWriter: os.Stderr,
		},
	}

	cfg := config.LoadClient()
	tokens, err := client.NewFileTokenStore(cfg.TokenFile)
	if err != nil {
		ui.Error("Error: " + err.Error())
		os.Exit(1)
	}

	c := &cli.CLI{
		Name:     "jobctl",
		Version:  version,
		Args:     os.Args[1:],
		Commands: cmd.Commands(&cmd.Meta{Ui: ui, Config: cfg, Tokens: tokens}),
	}

	exitStatus, err := c.Run()
	if err != nil {
		ui.Error("Error: " + err.Error())
	}

	os.Exit(exitStatus)
}
