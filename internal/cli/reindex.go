package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/naatacademy/naat-api/internal/audit"
	auditdb "github.com/naatacademy/naat-api/internal/database/audit"
	"github.com/naatacademy/naat-api/internal/search"
)

// ReindexCommand rebuilds stored search keys without going through the
// task queue.
type ReindexCommand struct {
	Entity     string
	BatchSize  int
	SQLitePath string
}

func NewReindexCommand() *ReindexCommand {
	return &ReindexCommand{}
}

func (cmd *ReindexCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("reindex", flag.ExitOnError)

	fs.StringVar(&cmd.Entity, "entity", "", "Entity to rebuild ("+strings.Join(search.Entities(), ", ")+"); all when empty")
	fs.IntVar(&cmd.BatchSize, "batch", search.DefaultBatchSize, "Rows loaded per query")
	fs.StringVar(&cmd.SQLitePath, "sqlite", "", "Use this SQLite file instead of the configured database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s reindex [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Recompute the search keys of articles and kalaam.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s reindex\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s reindex -entity kalaam -batch 500\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Entity != "" && !slices.Contains(search.Entities(), cmd.Entity) {
		fs.Usage()
		return fmt.Errorf("unknown entity %q", cmd.Entity)
	}
	if cmd.BatchSize <= 0 {
		return fmt.Errorf("batch must be positive")
	}

	return nil
}

func (cmd *ReindexCommand) Run() error {
	db, err := openDatabase(cmd.SQLitePath)
	if err != nil {
		return err
	}
	defer db.Close()

	auditService := audit.NewService(auditdb.NewRepository(db.DB))
	reindexer := search.NewReindexer(db.DB, auditService, cmd.BatchSize)

	updated, err := reindexer.Rebuild(context.Background(), cmd.Entity)
	if err != nil {
		return err
	}

	target := cmd.Entity
	if target == "" {
		target = "all entities"
	}
	fmt.Printf("✅ Rebuilt search keys for %s: %d rows updated\n", target, updated)
	return nil
}
