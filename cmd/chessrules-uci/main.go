package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/chessrules/internal/engine"
	"github.com/hailam/chessrules/internal/storage"
	"github.com/hailam/chessrules/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	dbDir      = flag.String("db", "", "database directory (default: platform data directory)")
	memDB      = flag.Bool("memdb", false, "keep preferences and saved games in memory only")
	depth      = flag.Int("depth", 0, "fixed search depth (0 = use difficulty)")
	difficulty = flag.String("difficulty", "", "easy, medium or hard")
	evaluator  = flag.String("eval", "", "evaluator: material or tables")
)

func main() {
	flag.Parse()
	log.SetPrefix("chessrules: ")

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	st, err := openStorage()
	if err != nil {
		log.Fatal("could not open storage: ", err)
	}
	defer st.Close()

	prefs, err := st.LoadPreferences()
	if err != nil {
		log.Printf("Warning: preferences not loaded: %v (using defaults)", err)
		prefs = storage.DefaultPreferences()
	}
	if first, err := st.IsFirstLaunch(); err == nil && first {
		log.Printf("First launch, saving default preferences")
		if err := st.SavePreferences(prefs); err != nil {
			log.Printf("Warning: %v", err)
		}
		if err := st.MarkFirstLaunchComplete(); err != nil {
			log.Printf("Warning: %v", err)
		}
	}

	// Command-line flags override stored preferences.
	if *difficulty != "" {
		prefs.Difficulty = *difficulty
	}
	if *evaluator != "" {
		prefs.Evaluator = *evaluator
	}
	if *depth > 0 {
		prefs.Depth = *depth
	}

	protocol := uci.New(engine.NewEngine(nil), st)
	protocol.ApplyPreferences(prefs)
	if err := protocol.Run(os.Stdin, os.Stdout); err != nil {
		log.Printf("input error: %v", err)
	}
}

func openStorage() (*storage.Storage, error) {
	switch {
	case *memDB:
		return storage.OpenInMemory()
	case *dbDir != "":
		return storage.Open(*dbDir)
	default:
		return storage.OpenDefault()
	}
}
