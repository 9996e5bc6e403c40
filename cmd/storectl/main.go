package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storedesk/internal/app"
	"github.com/vladislavdragonenkov/storedesk/internal/domain"
	"github.com/vladislavdragonenkov/storedesk/internal/service/admin"
	"github.com/vladislavdragonenkov/storedesk/internal/service/lifecycle"
	"github.com/vladislavdragonenkov/storedesk/internal/service/order"
	"github.com/vladislavdragonenkov/storedesk/internal/service/report"
	"github.com/vladislavdragonenkov/storedesk/internal/storage/sqlite"
	"github.com/vladislavdragonenkov/storedesk/internal/ticket"
	"github.com/vladislavdragonenkov/storedesk/internal/version"
)

const (
	defaultTimeout = 30 * time.Second
)

const usage = `usage: storectl [-config file] [-db path] <command> [flags]

commands:
  backup                     copy the store into the backup directory
  reset -yes                 backup, then recreate an empty store
  purge-orders -yes          delete all orders and items (no backup)
  stats                      print store statistics
  urgent                     print pending deliveries that need attention
  migrate up|down|status     manage schema migrations (-steps N)
  ticket -id N [-dir path]   export an order ticket
  version                    print build information`

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fail("load .env: %v", err)
	}
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)

	if err := run(os.Args[1:], os.Stdout); err != nil {
		fail("%v", err)
	}
}

func run(args []string, out io.Writer) error {
	global := flag.NewFlagSet("storectl", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	configPath := global.String("config", "", "path to YAML config")
	dbPath := global.String("db", "", "SQLite file (fallback: STORE_DB_PATH)")
	if err := global.Parse(args); err != nil {
		return fmt.Errorf("%w\n%s", err, usage)
	}

	rest := global.Args()
	if len(rest) == 0 {
		return errors.New(usage)
	}
	command, cmdArgs := strings.ToLower(rest[0]), rest[1:]
	if command == "version" {
		_, _ = fmt.Fprintln(out, version.String())
		return nil
	}

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if strings.TrimSpace(*dbPath) != "" {
		cfg.DBPath = strings.TrimSpace(*dbPath)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	switch command {
	case "migrate":
		return runMigrate(ctx, cfg, cmdArgs, out)
	case "backup", "reset", "purge-orders", "stats", "urgent", "ticket":
	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}

	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	yes := fs.Bool("yes", false, "confirm a destructive operation")
	id := fs.Int64("id", 0, "order id")
	dir := fs.String("dir", cfg.TicketDir, "ticket output directory")
	if err := fs.Parse(cmdArgs); err != nil {
		return fmt.Errorf("%s: %w", command, err)
	}
	if (command == "reset" || command == "purge-orders") && !*yes {
		return fmt.Errorf("%s is destructive: pass -yes to confirm", command)
	}
	if command == "ticket" && *id <= 0 {
		return errors.New("ticket: -id is required")
	}

	store, err := sqlite.OpenAndMigrate(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	adminSvc := admin.NewService(store, admin.WithBackupDir(cfg.BackupDir))

	switch command {
	case "backup":
		path, err := adminSvc.Backup(ctx)
		if err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		_, _ = fmt.Fprintf(out, "backup created: %s\n", path)
	case "reset":
		path, err := adminSvc.Reset(ctx)
		if err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		_, _ = fmt.Fprintf(out, "store reset, backup: %s\n", path)
	case "purge-orders":
		if err := adminSvc.PurgeOrders(ctx); err != nil {
			return fmt.Errorf("purge failed: %w", err)
		}
		_, _ = fmt.Fprintln(out, "all orders deleted")
	case "stats":
		stats, err := report.NewAggregator(sqlite.NewStatisticsSource(store)).ComputeStatistics(ctx)
		if err != nil {
			return fmt.Errorf("statistics failed: %w", err)
		}
		printStatistics(out, stats, cfg.CurrencySymbol)
	case "urgent":
		rep, err := lifecycle.NewTracker(sqlite.NewOrderRepository(store), nil).CountUrgent(ctx)
		if err != nil {
			return fmt.Errorf("urgency check failed: %w", err)
		}
		_, _ = fmt.Fprintln(out, lifecycle.Summary(rep))
		_, _ = fmt.Fprintf(out, "pending: %d\n", rep.TotalPending)
	case "ticket":
		manager := order.NewManager(sqlite.NewOrderRepository(store), nil)
		o, err := manager.GetOrder(ctx, *id)
		if err != nil {
			return fmt.Errorf("load order %d: %w", *id, err)
		}
		path, err := ticket.Export(*dir, o, ticket.Options{CurrencySymbol: cfg.CurrencySymbol})
		if err != nil {
			return fmt.Errorf("export ticket: %w", err)
		}
		_, _ = fmt.Fprintf(out, "ticket written: %s\n", path)
	}
	return nil
}

func runMigrate(ctx context.Context, cfg app.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	steps := fs.Int("steps", 0, "number of migrations to apply/rollback (0=all for up, 1 for down)")

	direction := "status"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		direction, args = strings.ToLower(args[0]), args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	store, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open sqlite store: %w", err)
	}
	defer store.Close()

	switch direction {
	case "up":
		if err := store.MigrateUp(ctx, *steps); err != nil {
			return fmt.Errorf("migrate up failed: %w", err)
		}
	case "down":
		n := *steps
		if n <= 0 {
			n = 1
		}
		if err := store.MigrateDown(ctx, n); err != nil {
			return fmt.Errorf("migrate down failed: %w", err)
		}
	case "status":
	default:
		return fmt.Errorf("unsupported direction: %s (use up|down|status)", direction)
	}

	v, count, err := store.MigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("migration status failed: %w", err)
	}
	_, _ = fmt.Fprintf(out, "migrate %s ok: version=%d applied=%d\n", direction, v, count)
	return nil
}

func printStatistics(out io.Writer, stats domain.Statistics, symbol string) {
	total, average := stats.TotalValue.StringFixed(2), stats.AverageOrderValue.StringFixed(2)
	if symbol != "" {
		total, average = symbol+" "+total, symbol+" "+average
	}
	_, _ = fmt.Fprintf(out, "customers:     %d\n", stats.CustomerCount)
	_, _ = fmt.Fprintf(out, "products:      %d\n", stats.ProductCount)
	_, _ = fmt.Fprintf(out, "orders:        %d\n", stats.OrderCount)
	_, _ = fmt.Fprintf(out, "pending:       %d\n", stats.PendingCount)
	_, _ = fmt.Fprintf(out, "total value:   %s\n", total)
	_, _ = fmt.Fprintf(out, "average order: %s\n", average)
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
