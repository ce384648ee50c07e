package main

import (
	"echo/ast"
	"echo/config"
	"echo/db"
	"echo/eval"
	"echo/trace"
	"echo/types"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
)

func main() {
	configPath := flag.String("config", "", "Config file (.yaml, .yml or .toml)")
	storeDriver := flag.String("store-driver", "", "Object store driver (memory, sqlite3, mysql, postgres)")
	dsn := flag.String("dsn", "", "Data source name for the object store")
	maxDepth := flag.Int("max-depth", 0, "Override the call depth limit")
	tickLimit := flag.Int64("tick-limit", -1, "Override the statement limit (0 = unlimited)")
	inherited := flag.Bool("inherited-lookup", false, "Walk the parent chain for verbs and properties")
	player := flag.String("player", "", "Evaluate as this player, creating it if needed")

	// Trace flags
	traceEnabled := flag.Bool("trace", false, "Enable execution tracing")
	traceFilter := flag.String("trace-filter", "", "Trace filter pattern (glob, e.g., 'open' or 'do_*')")

	// Inspection flags
	unparse := flag.Bool("unparse", false, "Print program source instead of evaluating")
	listObjects := flag.Bool("list-objects", false, "List stored objects after evaluation")
	showEnv := flag.Bool("show-env", false, "Print the player's variables after evaluation")
	listBuiltins := flag.Bool("list-builtins", false, "List builtin functions and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] program.yaml...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 && !*listBuiltins {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *storeDriver != "" {
		cfg.Store.Driver = *storeDriver
	}
	if *dsn != "" {
		cfg.Store.DSN = *dsn
	}
	if *maxDepth > 0 {
		cfg.MaxDepth = *maxDepth
	}
	if *tickLimit >= 0 {
		cfg.TickLimit = *tickLimit
	}
	if *inherited {
		cfg.InheritedLookup = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	programs := make([]*ast.Program, 0, flag.NArg())
	for _, path := range flag.Args() {
		prog, err := loadProgram(path)
		if err != nil {
			log.Fatalf("%v", err)
		}
		programs = append(programs, prog)
	}

	if *unparse {
		for _, prog := range programs {
			fmt.Println(ast.Unparse(prog.Body))
		}
		return
	}

	// Initialize tracer
	if *traceEnabled || cfg.Trace.Enabled {
		filters := cfg.Trace.Filters
		if *traceFilter != "" {
			filters = strings.Split(*traceFilter, ",")
			for i := range filters {
				filters[i] = strings.TrimSpace(filters[i])
			}
		}
		trace.Init(true, filters, os.Stderr)
		log.Printf("Tracing enabled (filters: %v)", filters)
	} else {
		trace.Init(false, nil, nil)
	}

	store, closeStore, err := cfg.OpenStore()
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	ev, err := eval.NewEvaluator(store, cfg)
	if err != nil {
		log.Fatalf("Failed to create evaluator: %v", err)
	}

	if *listBuiltins {
		for _, name := range ev.BuiltinNames() {
			fmt.Println(name)
		}
		return
	}

	if *player != "" {
		if _, err := ev.CreatePlayer(*player); err != nil && !errors.Is(err, db.ErrNameTaken) {
			log.Fatalf("Failed to create player %s: %v", *player, err)
		}
		if err := ev.SwitchPlayer(*player); err != nil {
			log.Fatalf("Failed to switch to player %s: %v", *player, err)
		}
	}

	status := 0
	for i, prog := range programs {
		val, err := ev.Eval(prog)
		if err != nil {
			printError(flag.Arg(i), err)
			status = 1
			continue
		}
		fmt.Println(val.String())
	}

	if *listObjects {
		dumpObjects(store)
	}
	if *showEnv {
		dumpEnvironment(ev)
	}

	if status != 0 {
		closeStore()
		os.Exit(status)
	}
}

// loadProgram reads and decodes a YAML program file
func loadProgram(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	prog, err := ast.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return prog, nil
}

// printError writes an evaluation error and its traceback to stderr
func printError(path string, err error) {
	var evalErr *eval.Error
	if !errors.As(err, &evalErr) {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %s: %s\n", path, evalErr.Code, evalErr.Message)
	for _, line := range evalErr.Traceback {
		fmt.Fprintf(os.Stderr, "  %s\n", line)
	}
}

// dumpObjects lists every object with its parent and verbs
func dumpObjects(store db.Store) {
	var objs []*db.Object
	switch s := store.(type) {
	case *db.MemoryStore:
		objs = s.All()
	case *db.SQLStore:
		all, err := s.All()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		objs = all
	default:
		fmt.Fprintf(os.Stderr, "Error: store %T cannot be listed\n", store)
		return
	}

	for _, obj := range objs {
		parent := "none"
		if obj.Parent != types.ObjNothing {
			parent = string(obj.Parent)
		}
		fmt.Printf("%s %q parent=%s props=%d verbs=%d\n", obj.ID, obj.Name, parent, len(obj.Properties), len(obj.Verbs))
	}
}

// dumpEnvironment prints the current player's bindings, sorted by name
func dumpEnvironment(ev *eval.Evaluator) {
	env, ok := ev.Environments().Get(ev.CurrentPlayer())
	if !ok {
		return
	}
	names := env.Names()
	sort.Strings(names)
	for _, name := range names {
		val, _ := env.Get(name)
		marker := ""
		if env.IsConst(name) {
			marker = " (const)"
		}
		fmt.Printf("%s = %s%s\n", name, val, marker)
	}
}
