package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/asa/foundation/core/error"
	mdwlog "github.com/msto63/asa/foundation/core/log"

	"github.com/msto63/asa/foundation/asa/parser"
	"github.com/msto63/asa/internal/history"
	"github.com/msto63/asa/internal/render"
	"github.com/msto63/asa/internal/service"
	"github.com/msto63/asa/pkg/core/config"
	"github.com/msto63/asa/pkg/core/logging"
)

var (
	cfgFile      string
	verbose      bool
	outputFormat string
	noColor      bool
	withHistory  bool
)

var rootCmd = &cobra.Command{
	Use:   "asa",
	Short: "Asa - Lexer und Parser für die Asa-Sprache",
	Long: `asa zerlegt Quelltext der Asa-Sprache in Tokens und baut daraus
einen Syntaxbaum.

Befehle:
  tokens   - Token-Strom anzeigen
  parse    - Syntaxbaum ausgeben (tree, json, yaml, sexpr)
  check    - Dateien prüfen (Round-Trip und Syntax)
  repl     - Interaktive Eingabe
  history  - Verlauf der Parser-Läufe
  config   - Konfiguration anlegen und anzeigen

Exit-Codes:
  0  Erfolg
  1  Sonstiger Fehler
  2  Syntaxfehler oder nicht unterstütztes Sprachmittel
  3  Limit überschritten oder ungültige Eingabe
  4  Fehlerhafte Konfiguration`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and prints errors that no command has
// reported yet
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !isReported(err) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: $ASA_CONFIG, ./asa.toml, ~/.config/asa/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output (Log-Level debug)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "Ausgabeformat ("+strings.Join(render.Formats(), ", ")+")")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Farbige Ausgabe abschalten")
	rootCmd.PersistentFlags().BoolVar(&withHistory, "history", false, "Lauf im Verlauf speichern")
}

// printError writes err and, in verbose mode or for internal errors, the
// stack captured when the error was created
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Fehler: %v\n", err)

	if !verbose && !mdwerror.HasCode(err, mdwerror.CodeAsaInternal) {
		return
	}
	var asaErr *mdwerror.Error
	if !errors.As(err, &asaErr) {
		return
	}
	if op := asaErr.Operation(); op != "" {
		fmt.Fprintf(w, "  Operation: %s\n", op)
	}
	for _, frame := range asaErr.StackTrace() {
		fmt.Fprintf(w, "  at %s (%s:%d)\n", frame.Function, frame.File, frame.Line)
	}
}

// reportedError marks an error whose diagnostic was already printed
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

func isReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// app bundles what a command needs to run
type app struct {
	cfg      *config.Config
	logger   *mdwlog.Logger
	service  *service.Service
	renderer *render.Renderer
	format   render.Format
	color    bool
}

// loadConfig reads the file given with --config or discovers one
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.Discover()
}

// newApp loads the configuration and builds logger, service and renderer.
// Flags override the configuration.
func newApp(cmd *cobra.Command) (*app, error) {
	return buildApp(cmd, false)
}

// buildApp is newApp with an in-memory history for interactive sessions
// that do not persist their runs
func buildApp(cmd *cobra.Command, sessionHistory bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logCfg := logging.FromConfig("asa", cfg.General)
	logCfg.RunID = runID
	logCfg.Output = cmd.ErrOrStderr()
	logger := logging.NewLogger(logCfg)
	if verbose {
		logger.SetLevel(mdwlog.LevelDebug)
	}
	mdwlog.SetDefault(logger)

	formatName := cfg.Output.Format
	if outputFormat != "" {
		formatName = outputFormat
	}
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	var recorder *history.Recorder
	if cfg.History.Enabled || withHistory {
		store, err := history.NewSQLiteStore(history.SQLiteConfig{Path: cfg.History.Path})
		if err != nil {
			return nil, err
		}
		recorder = history.NewRecorder(store, logger)
	} else if sessionHistory {
		recorder = history.NewRecorder(history.NewMemoryStore(), logger)
	}

	svc, err := service.NewService(service.Config{
		Parser: parser.Options{
			MaxDepth:       cfg.Parser.MaxDepth,
			MaxInputLength: cfg.Parser.MaxInputLength,
		},
		Recorder: recorder,
		Logger:   logger,
		RunID:    runID,
	})
	if err != nil {
		recorder.Close()
		return nil, err
	}

	logger.Debug("Configuration loaded", mdwlog.Fields{
		"source":    cfg.Source(),
		"format":    string(format),
		"history":   recorder != nil,
		"log_level": logger.GetLevel().String(),
	})

	color := cfg.Output.Color && !noColor
	return &app{
		cfg:      cfg,
		logger:   logger,
		service:  svc,
		renderer: render.New(color),
		format:   format,
		color:    color,
	}, nil
}

// Close releases the history store
func (a *app) Close() error {
	err := a.service.Close()
	if err != nil {
		a.logger.ErrorWithErr("Failed to close history store", err)
	}
	return err
}
