package service

import (
	"context"
	"errors"
	"time"

	mdwerror "github.com/msto63/asa/foundation/core/error"
	mdwlog "github.com/msto63/asa/foundation/core/log"

	"github.com/msto63/asa/foundation/asa/ast"
	"github.com/msto63/asa/foundation/asa/lexer"
	"github.com/msto63/asa/foundation/asa/parser"
	"github.com/msto63/asa/internal/history"
)

// Command names recorded in the history
const (
	CommandTokens = "tokens"
	CommandParse  = "parse"
	CommandCheck  = "check"
	CommandREPL   = "repl"
)

// Request describes one run over a source text
type Request struct {
	Command string // History command name; defaults per operation
	Source  string // File name or <stdin>
	Input   string
	Rule    string // Grammar rule for Parse; empty means program
}

// TokenResult is the outcome of Tokenize
type TokenResult struct {
	Tokens   []lexer.Token
	Duration time.Duration
}

// ParseResult is the outcome of Parse
type ParseResult struct {
	Rule     string
	Node     ast.Node
	Program  *ast.Program // Set when Rule is program
	Tokens   int
	Consumed int    // Tokens consumed by the rule
	Rest     string // Unconsumed source text
	Stats    ast.Stats
	Duration time.Duration
}

// CheckResult is the outcome of Check
type CheckResult struct {
	Tokens    int
	Functions int
	Duration  time.Duration
}

// Service runs the Asa front end and records each run
type Service struct {
	parser   *parser.Parser
	recorder *history.Recorder
	logger   *mdwlog.Logger
	runID    string
}

// Config holds service configuration
type Config struct {
	Parser   parser.Options
	Recorder *history.Recorder // Nil disables history
	Logger   *mdwlog.Logger
	RunID    string // Attached to returned errors and history entries
}

// NewService creates a new service
func NewService(cfg Config) (*Service, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	if cfg.Parser.Logger == nil {
		cfg.Parser.Logger = logger
	}

	p, err := parser.New(cfg.Parser)
	if err != nil {
		return nil, err
	}

	return &Service{
		parser:   p,
		recorder: cfg.Recorder,
		logger:   logger.WithName("service"),
		runID:    cfg.RunID,
	}, nil
}

// Parser returns the underlying parser
func (s *Service) Parser() *parser.Parser {
	return s.parser
}

// History returns the store runs are recorded in, or nil without history
func (s *Service) History() history.Store {
	return s.recorder.Store()
}

// begin starts the history entry and the logger for one operation
func (s *Service) begin(command string, req Request) (*history.Entry, *mdwlog.Logger) {
	command = commandOr(req.Command, command)
	entry := history.NewEntry(command, req.Source, req.Input)
	entry.RunID = s.runID
	return entry, s.logger.WithFields(mdwlog.Fields{
		"command": command,
		"source":  req.Source,
	})
}

// fail tags err with the run ID and records the rejected run
func (s *Service) fail(ctx context.Context, entry *history.Entry, err error, tokens int, start time.Time) error {
	var e *mdwerror.Error
	if s.runID != "" && errors.As(err, &e) {
		e.WithRequestID(s.runID)
	}
	s.recorder.Record(ctx, entry.Reject(err, tokens, time.Since(start)))
	return err
}

// Tokenize lexes the input
func (s *Service) Tokenize(ctx context.Context, req Request) (*TokenResult, error) {
	entry, log := s.begin(CommandTokens, req)
	start := time.Now()

	tokens, err := s.parser.Tokenize(req.Input)
	if err != nil {
		return nil, s.fail(ctx, entry, err, 0, start)
	}

	duration := time.Since(start)
	log.Debug("Input tokenized", mdwlog.Fields{"tokens": len(tokens)})
	s.recorder.Record(ctx, entry.Complete(len(tokens), 0, duration))
	return &TokenResult{Tokens: tokens, Duration: duration}, nil
}

// Parse parses the input as a program, or as req.Rule when one is given.
// The input is lexed once and the tokens are handed to the parser.
func (s *Service) Parse(ctx context.Context, req Request) (*ParseResult, error) {
	rule := req.Rule
	if rule == "" {
		rule = parser.RuleProgram
	}

	entry, log := s.begin(CommandParse, req)
	if rule != parser.RuleProgram {
		entry.Metadata = map[string]interface{}{"rule": rule}
	}
	start := time.Now()

	tokens, err := s.parser.Tokenize(req.Input)
	if err != nil {
		return nil, s.fail(ctx, entry, err, 0, start)
	}

	result := &ParseResult{Rule: rule, Tokens: len(tokens)}
	if rule == parser.RuleProgram {
		program, err := s.parser.ParseTokens(tokens)
		if err != nil {
			return nil, s.fail(ctx, entry, err, len(tokens), start)
		}
		result.Node = program
		result.Program = program
		result.Consumed = len(tokens)
	} else {
		rr, err := s.parser.ParseRuleTokens(rule, tokens)
		if err != nil {
			return nil, s.fail(ctx, entry, err, len(tokens), start)
		}
		result.Node = rr.Node
		result.Consumed = rr.Consumed
		result.Rest = rr.Rest
		if rr.Rest != "" {
			entry.Metadata["rest"] = rr.Rest
		}
	}

	result.Duration = time.Since(start)
	result.Stats = ast.Count(result.Node)
	if log.IsLevelEnabled(mdwlog.LevelDebug) {
		fields := mdwlog.Fields{"rule": rule, "tokens": len(tokens)}
		for kind, n := range result.Stats {
			fields["nodes_"+kind.String()] = n
		}
		log.Debug("Input parsed", fields)
	}
	s.recorder.Record(ctx, entry.Complete(len(tokens), result.Stats[ast.KindFunctionDefine], result.Duration))
	return result, nil
}

// Check verifies that the token stream reproduces the input byte for byte
// and that the input parses as a program
func (s *Service) Check(ctx context.Context, req Request) (*CheckResult, error) {
	entry, log := s.begin(CommandCheck, req)
	start := time.Now()

	tokens, err := s.parser.Tokenize(req.Input)
	if err != nil {
		return nil, s.fail(ctx, entry, err, 0, start)
	}

	if got := lexer.Source(tokens); got != req.Input {
		err := mdwerror.New("token stream does not reproduce the input").
			WithCode(mdwerror.CodeAsaInternal).
			WithOperation("service.Check").
			WithDetail("input_bytes", len(req.Input)).
			WithDetail("token_bytes", len(got))
		log.LogError(err)
		return nil, s.fail(ctx, entry, err, len(tokens), start)
	}

	program, err := s.parser.ParseTokens(tokens)
	if err != nil {
		return nil, s.fail(ctx, entry, err, len(tokens), start)
	}
	if len(program.Children) == 0 {
		log.Warn("Input defines no functions", mdwlog.Fields{"tokens": len(tokens)})
	}

	result := &CheckResult{
		Tokens:    len(tokens),
		Functions: len(program.Children),
		Duration:  time.Since(start),
	}
	log.Info("Input checked", mdwlog.Fields{
		"tokens":    result.Tokens,
		"functions": result.Functions,
	})
	s.recorder.Record(ctx, entry.Complete(result.Tokens, result.Functions, result.Duration))
	return result, nil
}

// Close releases the history store
func (s *Service) Close() error {
	return s.recorder.Close()
}

func commandOr(command, fallback string) string {
	if command == "" {
		return fallback
	}
	return command
}
