package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"duelscope/internal/back"
	"duelscope/internal/config"

	_ "github.com/mattn/go-sqlite3"
)

// Version holds the build-time version string.
var Version = "unknown" // nolint:gochecknoglobals

func main() {
	flag.Parse()

	if err := run(flag.Arg(0), flag.Args()); err != nil {
		log.Fatalf("error: %s", err)
	}
}

func run(command string, args []string) error {
	switch command {
	case "version":
		fmt.Fprintf(os.Stdout, "DuelScope %s\n", Version)
		return nil
	case "help":
		fmt.Fprint(os.Stdout, help())
		return nil
	case "serve", "import", "render", "dev:fixtures", "config:write":
	default:
		fmt.Fprint(os.Stderr, help())
		os.Exit(1)
	}

	conf, err := config.NewFromUserConfigDir()
	if err != nil {
		return err
	}

	switch command {
	case "config:write":
		return conf.Write()
	case "render":
		return render(conf, args[1:])
	}

	b, err := openBack(conf)
	if err != nil {
		return err
	}
	defer b.Close()

	switch command {
	case "serve":
		return serve(b, conf)
	case "import":
		count, err := b.Import(context.Background(), conf.DataDir, gameModes(conf))
		log.Printf("info: imported %d battles", count)
		return err
	case "dev:fixtures":
		return loadFixtures(b, conf, args[1:])
	}

	return nil
}

func openBack(conf *config.Config) (*back.Back, error) {
	if err := back.Migrate(conf.MigrationsDir(), conf.DatabasePath); err != nil {
		return nil, err
	}

	return back.New(conf.DatabasePath, back.NewSchoolMap(conf.Schools))
}

func gameModes(conf *config.Config) []string {
	ret := make([]string, 0, len(conf.GameModes))
	for k := range conf.GameModes {
		ret = append(ret, k)
	}
	sort.Strings(ret)

	return ret
}

func help() string {
	return fmt.Sprintf(`
DuelScope imports duel logs and charts the win rates of each class against
the others.

Usage: %[1]s COMMAND [ARGS…]

COMMANDS
    config:write write the current configuration to the user config dir
    dev:fixtures create default data for quick testing during development
    help         display this help
    import       import new duel logs once and exit
    render       fetch win rates from a running server and write an SVG chart
    serve        start the dashboard and import logs periodically
    version      display the current version
`,
		os.Args[0],
	)
}
