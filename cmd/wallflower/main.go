package main

import (
	"os"

	"github.com/dixieflatline76/wallflower/config"
	"github.com/dixieflatline76/wallflower/util/log"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatalf("%s: %v", config.AppName, err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "wallflower",
		Usage:   "Mirror your Flickr photostream into a local directory.",
		Version: config.AppVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the JSON config file",
				Value:   config.GetFilename(),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "print more detail about what happened",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "write the current settings to the config file",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "overwrite an existing config file",
					},
				},
				Action: initAction,
			},
			{
				Name:   "auth",
				Usage:  "authorize with Flickr and save the access token",
				Action: authAction,
			},
			{
				Name:   "check",
				Usage:  "check that the saved access token is valid",
				Action: checkAction,
			},
			{
				Name:   "sync",
				Usage:  "download photos that are not yet in the photo directory",
				Action: syncAction,
			},
		},
		Action: syncAction,
	}
}
