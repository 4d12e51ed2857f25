package main

import (
	"context"
	"flag"
	"log"

	"duelscope/internal/back"
	"duelscope/internal/config"
)

func loadFixtures(b *back.Back, conf *config.Config, args []string) error {
	flags := flag.NewFlagSet("dev:fixtures", flag.ExitOnError)
	mode := flags.String("mode", conf.DefaultMode, "game mode to insert the battles in")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := b.LoadFixtures(context.Background(), *mode); err != nil {
		return err
	}

	log.Printf("info: inserted fixtures in mode %s", *mode)
	return nil
}
