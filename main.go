package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"keyword-go/internal/config"
	"keyword-go/internal/service"
	"keyword-go/pkg/coerce"
	"keyword-go/pkg/logger"
	"keyword-go/pkg/provider"
)

const (
	modeLongtail = "longtail"
	modeScore    = "score"
	modeSort     = "sort"
	modeRank     = "rank"
	modeIntent   = "intent"
)

var errInputRequired = errors.New("input is required for this mode")

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

type cliOptions struct {
	configPath string
	mode       string
	seed       string
	input      string
	minWords   int
	maxItems   int
	rank       bool
	ascending  bool
	fetch      bool
}

func main() {
	var (
		opts  cliOptions
		debug bool
		help  bool
	)

	flag.StringVar(&opts.configPath, "config", getEnvOrDefault("KEYWORD_CONFIG", ""), "Configuration file path (env: KEYWORD_CONFIG)")
	flag.StringVar(&opts.mode, "mode", getEnvOrDefault("KEYWORD_MODE", modeLongtail), "longtail, score, sort, rank or intent (env: KEYWORD_MODE)")
	flag.StringVar(&opts.seed, "seed", getEnvOrDefault("KEYWORD_SEED", ""), "Seed keyword for longtail mode (env: KEYWORD_SEED)")
	flag.StringVar(&opts.input, "input", getEnvOrDefault("KEYWORD_INPUT", ""), "JSON input file, - for stdin (env: KEYWORD_INPUT)")
	flag.IntVar(&opts.minWords, "min-words", getEnvIntOrDefault("KEYWORD_MIN_WORDS", -1), "Minimum words per phrase, -1 uses config (env: KEYWORD_MIN_WORDS)")
	flag.IntVar(&opts.maxItems, "max-items", getEnvIntOrDefault("KEYWORD_MAX_ITEMS", -1), "Maximum longtail items, -1 uses config, 0 is unlimited (env: KEYWORD_MAX_ITEMS)")
	flag.BoolVar(&opts.rank, "rank", getEnvBoolOrDefault("KEYWORD_RANK", false), "Rank longtail items by quality before truncating (env: KEYWORD_RANK)")
	flag.BoolVar(&opts.ascending, "ascending", getEnvBoolOrDefault("KEYWORD_ASCENDING", false), "Sort lowest quality first (env: KEYWORD_ASCENDING)")
	flag.BoolVar(&opts.fetch, "fetch", getEnvBoolOrDefault("KEYWORD_FETCH", false), "Fetch candidates from the provider when no input is given (env: KEYWORD_FETCH)")
	flag.BoolVar(&debug, "debug", getEnvBoolOrDefault("DEBUG", false), "Enable debug logging (env: DEBUG)")
	flag.BoolVar(&help, "help", false, "Show help message")
	flag.Parse()

	if help {
		printUsage()
		return
	}

	cfg, err := config.NewManager().Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	if debug {
		cfg.Logger.Level = "debug"
	}
	// stdout carries the JSON result.
	if cfg.Logger.Output == "" || cfg.Logger.Output == "stdout" {
		cfg.Logger.Output = "stderr"
	}
	logger.SetLogger(logger.New(cfg.Logger))
	log := logger.GetLogger().WithField("component", "cli")

	var candidates provider.CandidateProvider
	if cfg.Provider.Enabled() {
		candidates = provider.NewClient(cfg.Provider.ClientConfig())
		log.WithField("endpoint", logger.MaskEndpoint(cfg.Provider.Endpoint)).Debug("Keyword provider configured")
	}
	svc := service.NewKeywordService(candidates, cfg.Extraction.Options())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	in, closeInput, err := openInput(opts.input)
	if err != nil {
		log.WithError(err).Fatal("Failed to open input")
	}
	defer closeInput()

	if err := run(ctx, svc, opts, in, os.Stdout); err != nil {
		log.WithError(err).WithField("mode", opts.mode).Error("Command failed")
		closeInput()
		os.Exit(1)
	}
}

// openInput returns nil when no input was requested.
func openInput(path string) (io.Reader, func(), error) {
	switch path {
	case "":
		return nil, func() {}, nil
	case "-":
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func run(ctx context.Context, svc service.KeywordService, opts cliOptions, in io.Reader, out io.Writer) error {
	var result interface{}

	switch opts.mode {
	case modeLongtail:
		req := service.LongtailRequest{Seed: opts.seed, Rank: opts.rank, Fetch: opts.fetch}
		if opts.minWords >= 0 {
			req.MinWords = &opts.minWords
		}
		if opts.maxItems >= 0 {
			req.MaxItems = &opts.maxItems
		}
		if in != nil {
			records, err := decodeRecords(in)
			if err != nil {
				return err
			}
			req.Candidates = records
		}
		res, err := svc.Longtail(ctx, req)
		if err != nil {
			return err
		}
		result = res

	case modeScore, modeSort, modeRank:
		if in == nil {
			return errInputRequired
		}
		records, err := decodeRecords(in)
		if err != nil {
			return err
		}
		switch opts.mode {
		case modeScore:
			result = svc.Score(records)
		case modeSort:
			result = svc.Sort(records, !opts.ascending)
		default:
			result = svc.Rank(records, !opts.ascending)
		}

	case modeIntent:
		if in == nil {
			return errInputRequired
		}
		phrases, err := decodePhrases(in)
		if err != nil {
			return err
		}
		result = svc.Classify(phrases)

	default:
		return fmt.Errorf("unknown mode %q", opts.mode)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// readInput decodes UTF-8 (with or without BOM) and BOM-marked UTF-16 input.
func readInput(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

func decodeRecords(r io.Reader) ([]coerce.Record, error) {
	data, err := readInput(r)
	if err != nil {
		return nil, err
	}
	var records []coerce.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode keyword records: %w", err)
	}
	return records, nil
}

// decodePhrases accepts a JSON array of strings or one phrase per line.
func decodePhrases(r io.Reader) ([]string, error) {
	data, err := readInput(r)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var phrases []string
		if err := json.Unmarshal(trimmed, &phrases); err != nil {
			return nil, fmt.Errorf("decode phrases: %w", err)
		}
		return phrases, nil
	}

	phrases := []string{}
	for _, line := range strings.Split(string(trimmed), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			phrases = append(phrases, line)
		}
	}
	return phrases, nil
}

func printUsage() {
	fmt.Println("keyword-go: keyword quality scoring and longtail extraction")
	fmt.Println("")
	fmt.Println("USAGE:")
	fmt.Println("    ./keyword-go -mode longtail -seed \"dog groomer\" -input candidates.json")
	fmt.Println("    cat keywords.json | ./keyword-go -mode sort -input -")
	fmt.Println("")
	fmt.Println("MODES:")
	fmt.Println("    longtail   Extract, classify and bucket longtail phrases for -seed")
	fmt.Println("    score      Score each keyword record with a per-component breakdown")
	fmt.Println("    sort       Sort keyword records by quality score")
	fmt.Println("    rank       Sort keyword records and attach their quality score")
	fmt.Println("    intent     Classify phrases (JSON array or one per line)")
	fmt.Println("")
	fmt.Println("OPTIONS:")
	flag.PrintDefaults()
	fmt.Println("")
	fmt.Println("Provider and extraction defaults are read from the config file and")
	fmt.Println("KEYWORD_PROVIDER_ENDPOINT, KEYWORD_PROVIDER_API_KEY, KEYWORD_EXTRACTION_MIN_WORDS, ...")
}
