package back

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"duelscope/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// ImportedFile remembers the state of a log file the last time we read it.
type ImportedFile struct {
	Mode       string
	Name       string
	ModifiedAt util.TimeAsTimestamp
}

func (f *ImportedFile) upsert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("ImportedFile").Options("OR REPLACE").SetMap(squirrel.Eq{
		"Mode":       f.Mode,
		"Name":       f.Name,
		"ModifiedAt": f.ModifiedAt,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getImportedFile(tx *sqlx.Tx, mode, name string) (ImportedFile, error) {
	var ret ImportedFile
	query := `SELECT * FROM ImportedFile WHERE Mode = ? AND Name = ? LIMIT 1`
	if err := tx.Get(&ret, query, mode, name); err != nil {
		return ImportedFile{}, err
	}

	return ret, nil
}

// Import reads every dataDir/<mode>/*.txt file that changed since the last
// import and replaces its battles with the file contents, battles of files
// that disappeared are removed. It returns the number of battles read.
// A failing file does not prevent the others from being imported.
func (b *Back) Import(ctx context.Context, dataDir string, modes []string) (int, error) {
	start := time.Now()
	var (
		total int
		errs  []error
	)

	for _, mode := range modes {
		paths, err := filepath.Glob(filepath.Join(dataDir, mode, "*.txt"))
		if err != nil {
			return total, err
		}

		names := make([]string, 0, len(paths))
		for _, path := range paths {
			names = append(names, filepath.Base(path))

			n, err := b.importFile(ctx, mode, path)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", path, err))
				continue
			}
			total += n
		}

		if err := b.pruneImportedFiles(ctx, mode, names); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", mode, err))
		}
	}

	if total > 0 {
		log.Printf("info: imported %d battles in %s", total, time.Since(start))
	}

	return total, util.ConcatErrors(errs)
}

func (b *Back) importFile(ctx context.Context, mode, path string) (int, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return 0, err
	}

	imported := ImportedFile{
		Mode:       mode,
		Name:       filepath.Base(path),
		ModifiedAt: util.TimeAsTimestamp(stat.ModTime()),
	}

	var count int
	if err := b.transaction(ctx, func(tx *sqlx.Tx) error {
		previous, err := getImportedFile(tx, mode, imported.Name)
		if err == nil && previous.ModifiedAt.Time().Unix() == imported.ModifiedAt.Time().Unix() {
			return nil // unchanged
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		if err := deleteFileBattles(tx, mode, imported.Name); err != nil {
			return err
		}

		count, err = insertBattlesFromFile(tx, path, mode, imported.Name)
		if err != nil {
			return err
		}

		return imported.upsert(tx)
	}); err != nil {
		return 0, err
	}

	return count, nil
}

// pruneImportedFiles forgets the files of mode that are not in names anymore
// along with their battles.
func (b *Back) pruneImportedFiles(ctx context.Context, mode string, names []string) error {
	return b.transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.Select("Name").From("ImportedFile").
			Where(squirrel.Eq{"Mode": mode}).
			Where(squirrel.NotEq{"Name": names}).
			ToSql()
		if err != nil {
			return err
		}

		var gone []string
		if err := tx.Select(&gone, query, args...); err != nil {
			return err
		}

		for _, name := range gone {
			log.Printf("info: %s/%s disappeared, removing its battles", mode, name)
			if err := deleteFileBattles(tx, mode, name); err != nil {
				return err
			}

			if _, err := tx.Exec(
				`DELETE FROM ImportedFile WHERE Mode = ? AND Name = ?`,
				mode, name,
			); err != nil {
				return err
			}
		}

		return nil
	})
}

func deleteFileBattles(tx *sqlx.Tx, mode, name string) error {
	_, err := tx.Exec(`DELETE FROM Battle WHERE Mode = ? AND SourceFile = ?`, mode, name)
	return err
}

func insertBattlesFromFile(tx *sqlx.Tx, path, mode, name string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var count, lineNo int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		battle, err := ParseBattleLine(line, mode, name, lineNo)
		if err != nil {
			log.Printf("warning: %s:%d: skipping line: %s", name, lineNo, err)
			continue
		}

		inserted, err := battle.insert(tx)
		if err != nil {
			return 0, err
		}
		if inserted {
			count++
		}
	}

	return count, scanner.Err()
}

// InsertBattles stores battles that did not come from a log file.
func (b *Back) InsertBattles(ctx context.Context, battles []Battle) error {
	return b.transaction(ctx, func(tx *sqlx.Tx) error {
		for k := range battles {
			if _, err := battles[k].insert(tx); err != nil {
				return err
			}
		}

		return nil
	})
}
