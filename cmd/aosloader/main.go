package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/DaanHessen/aos-loader/internal/assets"
	"github.com/DaanHessen/aos-loader/internal/client"
	"github.com/DaanHessen/aos-loader/internal/resolver"
	"github.com/DaanHessen/aos-loader/internal/settings"
	"github.com/DaanHessen/aos-loader/internal/store"
	"github.com/DaanHessen/aos-loader/internal/text"
	"github.com/DaanHessen/aos-loader/internal/ui"
	"github.com/DaanHessen/aos-loader/internal/util"
)

var version = "2.0.0"

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("AOSLOADER_CONFIG"), "YAML config file (optional)")
	dsn := flag.String("dsn", "", "PostgreSQL DSN (default $DATABASE_URL)")
	memory := flag.Bool("memory", false, "Keep settings in memory only")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "aosloader [--config file] [--dsn DSN] [--memory] <command>\n\n")
		fmt.Fprintf(os.Stderr, "commands:\n  edit                 settings form (default)\n  show                 print settings and the init call\n")
		fmt.Fprintf(os.Stderr, "  render [--ua UA|--mobile]  print the tags for one page render\n  set key=value ...    submit settings without the form\n")
		fmt.Fprintf(os.Stderr, "  revisions [--limit N]      list past writes (0 lists all)\n  attrs                data-attribute reference\n  migrate up|down|status  manage the schema\n  version\n\nflags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	cmd := "edit"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}
	switch cmd {
	case "version":
		fmt.Println("aosloader", version, "AOS", resolver.DefaultLibVersion)
		return
	case "attrs":
		fmt.Print(text.RenderReference(100))
		return
	}

	var (
		visitor renderFlags
		limit   int
		err     error
	)
	switch cmd {
	case "render":
		visitor, err = parseRenderFlags(args)
	case "revisions":
		limit, err = parseRevisionsFlags(args)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := util.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	cfg.ApplyEnv(os.Getenv)
	if *dsn != "" {
		cfg.DSN = *dsn
	}
	if *memory {
		cfg.Memory = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	if cmd == "migrate" {
		if len(args) < 1 {
			log.Fatal("migrate requires 'up' or 'down'")
		}
		runMigrate(cfg, args[0])
		return
	}

	ctx := context.Background()
	st, closeStore, err := openSettings(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open settings store: %v", err)
	}
	defer closeStore()

	switch cmd {
	case "edit":
		if err := ui.Run(ctx, st, cfg, version); err != nil {
			log.Fatal(err)
		}
	case "show":
		s, err := st.Read(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(s.Summary())
		fmt.Printf("AOS.init(%s)\n", resolver.Serialize(resolver.BuildInitOptions(s)))
	case "render":
		s, err := st.Read(ctx)
		if err != nil {
			log.Fatal(err)
		}
		plan, ok := cfg.Assets().Resolve(s, visitor.isMobile())
		if !ok {
			log.Printf("AOS is disabled for mobile visitors; nothing to render")
			return
		}
		q := assets.NewQueue()
		if err := q.Apply(plan); err != nil {
			log.Fatal(err)
		}
		if err := q.Render(os.Stdout); err != nil {
			log.Fatal(err)
		}
	case "set":
		in, err := settings.ParseInput(args)
		if err != nil {
			log.Fatal(err)
		}
		cur, err := st.Read(ctx)
		if err != nil {
			log.Fatal(err)
		}
		// Fields not named on the command line keep their stored value.
		form := cur.Form()
		for k, v := range in {
			form[k] = v
		}
		clean, err := st.SanitizeAndWrite(ctx, form)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(clean.Summary())
	case "revisions":
		hist, err := st.History(ctx, limit)
		if err != nil {
			log.Fatal(err)
		}
		if len(hist) == 0 {
			fmt.Println("(no revisions)")
		}
		for _, e := range hist {
			fmt.Printf("%s  %s  %s\n", e.At, e.ID, e.Settings.Summary())
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// renderFlags describes the visitor a render is simulated for.
type renderFlags struct {
	ua     string
	mobile bool
}

func (r renderFlags) isMobile() bool { return r.mobile || client.IsMobile(r.ua) }

func parseRenderFlags(args []string) (renderFlags, error) {
	var r renderFlags
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&r.ua, "ua", "", "User-Agent of the simulated visitor")
	fs.BoolVar(&r.mobile, "mobile", false, "Treat the visitor as a mobile client")
	if err := fs.Parse(args); err != nil {
		return renderFlags{}, fmt.Errorf("render: %w", err)
	}
	if fs.NArg() > 0 {
		return renderFlags{}, fmt.Errorf("render: unexpected argument %q", fs.Arg(0))
	}
	return r, nil
}

func parseRevisionsFlags(args []string) (int, error) {
	fs := flag.NewFlagSet("revisions", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	limit := fs.Int("limit", 10, "Number of revisions to list (0 lists all)")
	if err := fs.Parse(args); err != nil {
		return 0, fmt.Errorf("revisions: %w", err)
	}
	if fs.NArg() > 0 {
		return 0, fmt.Errorf("revisions: unexpected argument %q", fs.Arg(0))
	}
	return *limit, nil
}

func openSettings(ctx context.Context, cfg util.Config) (*store.SettingsStore, func(), error) {
	if cfg.Memory {
		return store.NewSettingsStore(store.NewMemoryOptions(), cfg.OptionKey), func() {}, nil
	}
	// Ensure migrations are applied before touching the options table
	mig, err := store.NewMigrator(cfg.DSN, cfg.Migrations)
	if err != nil {
		return nil, nil, err
	}
	migCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := mig.Up(migCtx); err != nil && err != store.ErrNoChange {
		return nil, nil, fmt.Errorf("migrations failed: %w", err)
	}
	db, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	st := store.NewSettingsStore(store.NewOptionRepo(db), cfg.OptionKey)
	return st, func() { _ = db.Close() }, nil
}

func runMigrate(cfg util.Config, action string) {
	if cfg.Memory {
		log.Fatal("migrate needs a database; drop --memory")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	migrator, err := store.NewMigrator(cfg.DSN, cfg.Migrations)
	if err != nil {
		log.Fatal(err)
	}
	switch action {
	case "up":
		if err := migrator.Up(ctx); err != nil && err != store.ErrNoChange {
			log.Fatal(err)
		}
		fmt.Println("Migrations applied")
	case "down":
		if err := migrator.Down(ctx); err != nil && err != store.ErrNoChange {
			log.Fatal(err)
		}
		fmt.Println("Migrations rolled back")
	case "status":
		v, dirty, err := migrator.Version(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("schema version %d (dirty=%v)\n", v, dirty)
	default:
		log.Fatal("unknown migrate action; use up|down|status")
	}
}
