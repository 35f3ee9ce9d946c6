// Command familyd opens the household store, optionally seeds demo data and
// prints today's agenda with open todo and shopping counts.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"familycore/internal/blob"
	"familycore/internal/config"
	"familycore/internal/core"
	"familycore/internal/i18n"
	"familycore/internal/seed"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("familyd: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()

	engine := core.NewDefaultRulesEngine()
	store, err := core.OpenPersistentStore(engine, core.StorageSettings{
		Driver:      core.StorageDriver(cfg.StorageDriver),
		SQLitePath:  cfg.SQLitePath,
		PostgresDSN: cfg.PostgresDSN,
	})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	opts := []core.ServiceOption{}
	if cfg.MetricsEnabled {
		opts = append(opts, core.WithMetricsRecorder(core.NewPrometheusMetricsRecorder(prometheus.DefaultRegisterer)))
	}
	svc := core.NewService(store, opts...)

	if cfg.AutoBackup {
		blobs, err := blob.Open(ctx, blob.Settings{
			Driver: blob.Driver(cfg.BlobDriver),
			FSRoot: cfg.BlobFSRoot,
		})
		if err != nil {
			return fmt.Errorf("open blob store: %w", err)
		}
		core.AutoBackup(store, blobs, "backups/latest.json", log.Printf)
	}

	now := time.Now()
	if cfg.SeedDemo {
		if err := seed.Demo(ctx, svc, now); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	printAgenda(os.Stdout, svc, i18n.New(cfg.Language), now)
	return nil
}

func printAgenda(w io.Writer, svc *core.Service, tr *i18n.Translator, now time.Time) {
	store := svc.Store()
	today := now.Format(core.DateLayout)

	fmt.Fprintf(w, "%s (%s)\n", tr.T("home.today"), today)
	events := core.EventsOn(store.ListEvents(), today)
	core.SortEvents(events)
	if len(events) == 0 {
		fmt.Fprintln(w, "  -")
	}
	for _, ev := range events {
		when := ev.Time
		if when == "" {
			when = "--:--"
		}
		fmt.Fprintf(w, "  %s  %s [%s]\n", when, ev.Title, tr.PriorityLabel(ev.Priority))
	}

	fmt.Fprintf(w, "%s\n", tr.T("home.importantTodos"))
	for _, td := range core.HighPriorityTodos(store.ListTodos()) {
		fmt.Fprintf(w, "  [ ] %s\n", td.Title)
	}

	fmt.Fprintf(w, "open todos: %d, open shopping items: %d\n",
		core.OpenTodoCount(store.ListTodos()),
		core.OpenShoppingItemCount(store.ListShoppingLists()))

	if member, ok := core.CurrentMember(store.Family()); ok {
		fmt.Fprintf(w, "signed in: %s (%s)\n", member.Name, tr.RoleLabel(member.Role))
	}
}
