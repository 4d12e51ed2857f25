package back

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"duelscope/internal/util"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3" // migrate driver
	_ "github.com/golang-migrate/migrate/v4/source/file"      // migrate source
	"github.com/jmoiron/sqlx"
)

type Back struct {
	db      *sqlx.DB
	schools SchoolMap
}

func New(sqlDSN string, schools SchoolMap) (*Back, error) {
	// Why even bother converting names? A single greppable string across all
	// your source code is better than any odd conversion scheme you could ever
	// come up with.
	// HACK: This is global but putting this in init() makes test ugly.
	// As only the Back relies on the DB, this seems like an okay-ish place.
	sqlx.NameMapper = func(v string) string { return v }

	db, err := sqlx.Connect("sqlite3", sqlDSN)
	if err != nil {
		return nil, err
	}

	// SQLite does not like concurrent writers.
	db.SetMaxOpenConns(1)

	if schools == nil {
		schools = SchoolMap{}
	}

	return &Back{
		db:      db,
		schools: schools,
	}, nil
}

// Migrate brings the database schema at dbPath up to date using the
// migrations found in dir.
func Migrate(dir, dbPath string) error {
	migrator, err := migrate.New("file://"+dir, "sqlite3://"+dbPath)
	if err != nil {
		return fmt.Errorf("unable to create migrator: %w", err)
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("unable to migrate: %w", err)
	}

	return nil
}

func (b *Back) Close() error {
	return b.db.Close()
}

// Run periodically imports new duel logs found in dataDir until done is closed.
func (b *Back) Run(wg *sync.WaitGroup, done <-chan struct{}, dataDir string, modes []string) {
	defer wg.Done()
	log.Print("info: starting Back dæmon")

	for {
		if _, err := b.Import(context.Background(), dataDir, modes); err != nil {
			log.Printf("error: periodic import: %s", err)
		}

		select {
		case <-time.After(1 * time.Minute):
		case <-done:
			return
		}
	}
}

func (b *Back) transaction(ctx context.Context, cb util.TransactionCallback) error {
	return util.Transaction(ctx, b.db, cb)
}
