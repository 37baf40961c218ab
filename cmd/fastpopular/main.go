// Command fastpopular mines a corpus of PGN game records for
// frequently-occurring board positions and writes them, annotated with
// their occurrence counts, to an EPD-like text file.
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"regexp"
	"runtime"

	logging "github.com/op/go-logging"
	flag "github.com/spf13/pflag"

	"fastpopular/internal/corpus"
	"fastpopular/internal/miner"
	"fastpopular/internal/shard"
)

var log = logging.MustGetLogger("fastpopular")

func init() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatter := logging.MustStringFormatter(`%{time:15:04:05.000} %{level:.4s} %{message}`)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, formatter))
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "fastpopular: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	file            string
	dir             string
	recursive       bool
	noFRC           bool
	allowDuplicates bool
	concurrency     int
	matchEngine     string
	matchBook       string
	matchBookInvert bool
	sprtOnly        bool
	fixFEN          bool
	maxPlies        int
	stopEarly       bool
	countStopEarly  int
	minCount        uint64
	saveCount       bool
	omitMoveCounter bool
	tbLimit         int
	omitMates       bool
	minElo          int
	out             string
}

func parseArgs(args []string) (*config, error) {
	f := flag.NewFlagSet("fastpopular", flag.ContinueOnError)
	var cdb bool
	cfg := &config{}

	f.StringVar(&cfg.file, "file", "", "mine a single PGN file")
	f.StringVar(&cfg.dir, "dir", "", "mine every PGN file in a directory")
	f.BoolVarP(&cfg.recursive, "recursive", "r", false, "recurse into subdirectories of --dir")
	f.BoolVar(&cfg.noFRC, "noFRC", false, "skip Chess960/FRC games entirely")
	f.BoolVar(&cfg.allowDuplicates, "allowDuplicates", false, "tolerate the same test appearing under multiple directories")
	f.IntVar(&cfg.concurrency, "concurrency", runtime.NumCPU(), "number of worker goroutines")
	f.StringVar(&cfg.matchEngine, "matchEngine", "", "regex matched against player names to restrict counting to one side")
	f.StringVar(&cfg.matchBook, "matchBook", "", "regex matched against each test's book name")
	f.BoolVar(&cfg.matchBookInvert, "matchBookInvert", false, "keep files whose book does NOT match --matchBook")
	f.BoolVar(&cfg.sprtOnly, "SPRTonly", false, "keep only tests whose metadata marks them as SPRT runs")
	f.BoolVar(&cfg.fixFEN, "fixFEN", false, "rewrite a FEN tag's truncated move counters using the test's book_depth")
	f.IntVar(&cfg.maxPlies, "maxPlies", math.MaxInt32, "maximum number of counted plies per game")
	f.BoolVar(&cfg.stopEarly, "stopEarly", false, "stop a game's traversal once countStopEarly novel positions are seen")
	f.IntVar(&cfg.countStopEarly, "countStopEarly", 0, "novel-position budget per game; only active with --stopEarly")
	f.Uint64Var(&cfg.minCount, "minCount", 1, "occurrence threshold a position must cross to be emitted (0 disables emission)")
	f.BoolVar(&cfg.saveCount, "saveCount", false, "defer output until the run completes, annotated with final counts")
	f.BoolVar(&cfg.omitMoveCounter, "omitMoveCounter", false, "omit halfmove/fullmove counters from emitted positions")
	f.IntVar(&cfg.tbLimit, "TBlimit", 0, "skip games once piece count drops to or below this many pieces")
	f.BoolVar(&cfg.omitMates, "omitMates", false, "skip positions with no legal replies")
	f.IntVar(&cfg.minElo, "minElo", 0, "minimum Elo required of both players")
	f.BoolVar(&cdb, "cdb", false, "alias for --TBlimit 7 --omitMates")
	f.StringVarP(&cfg.out, "out", "o", "popular.epd", "output file path")
	help := f.BoolP("help", "h", false, "show usage")

	if err := f.Parse(args); err != nil {
		return nil, err
	}
	if *help {
		f.Usage()
		os.Exit(0)
	}

	if cdb {
		cfg.tbLimit = 7
		cfg.omitMates = true
	}
	if !cfg.stopEarly {
		cfg.countStopEarly = math.MaxInt32
	}
	if cfg.saveCount && !cfg.omitMoveCounter {
		return nil, fmt.Errorf("--saveCount requires --omitMoveCounter")
	}
	if cfg.file == "" && cfg.dir == "" {
		return nil, fmt.Errorf("specify --file or --dir")
	}
	return cfg, nil
}

func run(args []string) error {
	cfg, err := parseArgs(args)
	if err != nil {
		return err
	}

	files, err := corpus.Discover(cfg.file, cfg.dir, cfg.recursive)
	if err != nil {
		return err
	}
	files, err = corpus.SortAndRejectDuplicates(files)
	if err != nil {
		return err
	}

	meta, err := corpus.GetMetadata(files, cfg.allowDuplicates)
	if err != nil {
		return err
	}

	if cfg.sprtOnly {
		files = corpus.FilterSPRT(files, meta)
	}
	if cfg.matchBook != "" {
		re, err := regexp.Compile(cfg.matchBook)
		if err != nil {
			return fmt.Errorf("--matchBook: %w", err)
		}
		files = corpus.FilterBook(files, meta, re, cfg.matchBookInvert)
	}

	if cfg.fixFEN {
		for _, file := range files {
			if _, ok := meta.Lookup(file); !ok {
				return fmt.Errorf("--fixFEN requires sidecar metadata for %s", file)
			}
		}
	}

	var engineRegex *regexp.Regexp
	if cfg.matchEngine != "" {
		engineRegex, err = regexp.Compile(cfg.matchEngine)
		if err != nil {
			return fmt.Errorf("--matchEngine: %w", err)
		}
	}

	out, err := os.Create(cfg.out)
	if err != nil {
		return err
	}
	defer out.Close()

	filters := &miner.Filters{
		EngineRegex:     engineRegex,
		MinElo:          cfg.minElo,
		NoFRC:           cfg.noFRC,
		MaxPlies:        cfg.maxPlies,
		StopEarly:       cfg.stopEarly,
		CountStopEarly:  cfg.countStopEarly,
		MinCount:        cfg.minCount,
		SaveCount:       cfg.saveCount,
		OmitMoveCounter: cfg.omitMoveCounter,
		TBLimit:         cfg.tbLimit,
		OmitMates:       cfg.omitMates,
		FixFEN:          cfg.fixFEN,
	}

	runCfg := &miner.Run{
		Files:       files,
		Concurrency: cfg.concurrency,
		Filters:     filters,
		Meta:        meta,
		Counts:      shard.NewCountTable(),
		Canonical:   shard.NewCanonicalTable(),
		Writer:      miner.NewWriter(out),
		Totals:      &miner.Totals{},
		Logf: func(format string, args ...interface{}) {
			log.Infof(format, args...)
		},
	}

	if err := runCfg.Execute(context.Background()); err != nil {
		return err
	}
	log.Infof("mined %d files, %d games, %d positions reported", len(files), runCfg.Totals.Games, runCfg.Totals.Reported)
	return nil
}
