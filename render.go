package main

import (
	"context"
	"flag"
	"io/ioutil"
	"log"
	"os"
	"time"

	"duelscope/internal/chart"
	"duelscope/internal/config"
	"duelscope/pkg/duelapi"
)

// render draws the win rates served by a DuelScope instance to an SVG file.
func render(conf *config.Config, args []string) error {
	flags := flag.NewFlagSet("render", flag.ExitOnError)
	url := flags.String("url", conf.APIURL, "base URL of the DuelScope server")
	mode := flags.String("mode", conf.DefaultMode, "game mode")
	date := flags.String("date", "", "only use battles of this day (YYYY-MM-DD)")
	out := flags.String("o", "-", "output file, - for stdout")
	if err := flags.Parse(args); err != nil {
		return err
	}

	api, err := duelapi.New(*url)
	if err != nil {
		return err
	}

	var palette chart.Palette = chart.RandomPalette{}
	if conf.StableColors {
		palette = chart.StablePalette{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ctrl := chart.NewController(api, palette, chart.DefaultOptions())
	ch, err := ctrl.Reload(ctx, nil, chart.FilterInput{Mode: *mode, Date: *date})
	if err != nil {
		return err
	}
	defer ch.Destroy()

	if *out == "-" {
		_, err := os.Stdout.Write(ch.SVG())
		return err
	}

	log.Printf("info: writing chart to %s", *out)
	return ioutil.WriteFile(*out, ch.SVG(), 0o644) // nolint:gosec
}
