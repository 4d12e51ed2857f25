package main

import (
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"duelscope/internal/back"
	"duelscope/internal/config"
	"duelscope/internal/web"
)

func serve(b *back.Back, conf *config.Config) error {
	done := make(chan struct{})
	signaled := make(chan os.Signal, 1)
	signal.Notify(signaled, syscall.SIGINT, syscall.SIGTERM)

	server, err := web.NewServer(b, conf)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go b.Run(&wg, done, conf.DataDir, gameModes(conf))
	go server.Serve(&wg, done)

	sig := <-signaled
	log.Printf("info: received signal %d", sig)

	close(done)
	wg.Wait()

	log.Print("info: shutdown complete")

	return nil
}
