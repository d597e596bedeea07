package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	j "github.com/goccy/go-json"
	"go.uber.org/zap"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/internal/config"
	"github.com/reoring/formskema/internal/logging"
	js "github.com/reoring/formskema/jsonschema"
	"github.com/reoring/formskema/registration"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `formskema: registration record validator

Usage:
  formskema validate [-mode strict|lenient] [-format auto|json|yaml] [-fail-fast] [-dup ignore|warn|error] [file...]
  formskema schema   [-mode strict|lenient]
  formskema form     [-mode strict|lenient] < events.jsonl

Environment:
  FORMSKEMA_MODE, FORMSKEMA_FAIL_FAST, FORMSKEMA_DUPLICATE_KEYS, FORMSKEMA_MAX_DEPTH,
  FORMSKEMA_MAX_BYTES, FORMSKEMA_LOG_LEVEL, FORMSKEMA_LOG_FORMAT, FORMSKEMA_LOG_FILE`)
}

// app carries what every subcommand needs.
type app struct {
	cfg    config.Config
	log    *zap.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	logger, closeLog, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile, Writer: stderr})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	defer func() { _ = closeLog() }()

	a := &app{cfg: cfg, log: logger, stdin: stdin, stdout: stdout, stderr: stderr}
	var cmdErr error
	code := exitOK
	switch args[0] {
	case "validate":
		code, cmdErr = a.validateCmd(ctx, args[1:])
	case "schema":
		code, cmdErr = a.schemaCmd(args[1:])
	case "form":
		code, cmdErr = a.formCmd(ctx, args[1:])
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return exitOK
	default:
		usage(stderr)
		return exitUsage
	}
	if cmdErr != nil {
		if errors.Is(cmdErr, flag.ErrHelp) {
			return exitUsage
		}
		logger.Error("command failed", zap.String("command", args[0]), zap.Error(cmdErr))
		return exitUsage
	}
	return code
}

// newFlagSet registers -mode on a ContinueOnError flag set.
func (a *app) newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	mode := fs.String("mode", a.cfg.Mode, "address policy: strict or lenient")
	return fs, mode
}

// report is the per-document output of validate.
type report struct {
	File     string               `json:"file"`
	Valid    bool                 `json:"valid"`
	Record   *registration.Record `json:"record,omitempty"`
	Errors   map[string]string    `json:"errors,omitempty"`
	Issues   formskema.Issues     `json:"issues,omitempty"`
	Warnings formskema.Issues     `json:"warnings,omitempty"`
}

func (a *app) validateCmd(ctx context.Context, args []string) (int, error) {
	fs, modeFlag := a.newFlagSet("validate")
	format := fs.String("format", "auto", "document format: auto, json or yaml")
	failFast := fs.Bool("fail-fast", a.cfg.FailFast, "stop at the first failing field")
	dup := fs.String("dup", a.cfg.DuplicateKeys, "duplicate keys: ignore, warn or error")
	if err := fs.Parse(args); err != nil {
		return exitUsage, err
	}
	mode, err := registration.ParseMode(*modeFlag)
	if err != nil {
		return exitUsage, err
	}
	sev, err := config.DuplicateSeverity(*dup)
	if err != nil {
		return exitUsage, err
	}
	opt := a.cfg.ParseOpt()
	opt.FailFast = *failFast
	opt.Strictness.OnDuplicateKey = sev

	files := fs.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}
	enc := j.NewEncoder(a.stdout)
	code := exitOK
	for _, name := range files {
		data, err := a.readInput(name)
		if err != nil {
			return exitUsage, fmt.Errorf("read %s: %w", name, err)
		}
		rep := validateDocument(ctx, name, data, *format, mode, opt)
		for _, w := range rep.Warnings {
			a.log.Warn("document warning", zap.String("file", name), zap.String("path", w.Path), zap.String("code", w.Code), zap.String("message", w.Message))
		}
		if rep.Valid {
			a.log.Debug("document valid", zap.String("file", name))
		} else {
			a.log.Info("document invalid", zap.String("file", name), zap.Int("issues", len(rep.Issues)))
			code = exitInvalid
		}
		if err := enc.Encode(rep); err != nil {
			return exitUsage, fmt.Errorf("write report: %w", err)
		}
	}
	return code, nil
}

func (a *app) readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(a.stdin)
	}
	return os.ReadFile(name)
}

func validateDocument(ctx context.Context, name string, data []byte, format string, mode registration.Mode, opt formskema.ParseOpt) report {
	rep := report{File: name}
	src := sourceFor(name, data, format)
	if opt.FailFast {
		ctx = formskema.WithFailFast(ctx, true)
	}
	cand, warnings, err := formskema.DecodeCandidate(src, opt)
	rep.Warnings = warnings
	if err == nil {
		var rec registration.Record
		rec, err = registration.SchemaFor(mode).Parse(ctx, cand)
		if err == nil {
			rec.Password = redacted
			rep.Valid = true
			rep.Record = &rec
			return rep
		}
	}
	rep.Issues, _ = formskema.AsIssues(err)
	rep.Errors = formskema.ByPath(err)
	return rep
}

const redacted = "********"

func sourceFor(name string, data []byte, format string) formskema.Source {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return formskema.YAMLBytes(data)
	case "json":
		return formskema.JSONBytes(data)
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return formskema.YAMLBytes(data)
	}
	return formskema.JSONBytes(data)
}

func (a *app) schemaCmd(args []string) (int, error) {
	fs, modeFlag := a.newFlagSet("schema")
	if err := fs.Parse(args); err != nil {
		return exitUsage, err
	}
	mode, err := registration.ParseMode(*modeFlag)
	if err != nil {
		return exitUsage, err
	}
	s, err := registration.SchemaFor(mode).JSONSchema()
	if err != nil {
		return exitUsage, fmt.Errorf("project schema: %w", err)
	}
	out, err := js.Document(s, "Registration ("+mode.String()+")")
	if err != nil {
		return exitUsage, fmt.Errorf("render schema: %w", err)
	}
	if _, err := fmt.Fprintln(a.stdout, string(out)); err != nil {
		return exitUsage, err
	}
	return exitOK, nil
}

// event is one line of form input.
type event struct {
	Op    string `json:"op"` // set, submit or reset
	Path  string `json:"path,omitempty"`
	Value any    `json:"value,omitempty"`
}

// formState is printed after each event.
type formState struct {
	Op     string               `json:"op"`
	Path   string               `json:"path,omitempty"`
	Errors map[string]string    `json:"errors"`
	Record *registration.Record `json:"record,omitempty"`
	Error  string               `json:"error,omitempty"`
}

func (a *app) formCmd(ctx context.Context, args []string) (int, error) {
	fs, modeFlag := a.newFlagSet("form")
	if err := fs.Parse(args); err != nil {
		return exitUsage, err
	}
	mode, err := registration.ParseMode(*modeFlag)
	if err != nil {
		return exitUsage, err
	}
	form := registration.NewForm(mode)
	sub := registration.NewLogSubmitter(a.log)

	dec := j.NewDecoder(a.stdin)
	dec.UseNumber()
	enc := j.NewEncoder(a.stdout)
	code := exitOK
	for {
		var ev event
		if err := dec.Decode(&ev); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return exitUsage, fmt.Errorf("decode event: %w", err)
		}
		st := formState{Op: ev.Op, Path: ev.Path}
		switch ev.Op {
		case "set":
			if err := form.Set(ctx, ev.Path, ev.Value); err != nil {
				st.Error = err.Error()
			}
		case "submit":
			rec, err := form.Submit(ctx)
			if err == nil {
				if err := sub.Submit(ctx, rec); err != nil {
					return exitUsage, fmt.Errorf("submit: %w", err)
				}
				rec.Password = redacted
				st.Record = &rec
				code = exitOK
			} else {
				code = exitInvalid
			}
		case "reset":
			form.Reset()
		default:
			st.Error = fmt.Sprintf("unknown op %q", ev.Op)
		}
		st.Errors = form.Errors()
		if err := enc.Encode(st); err != nil {
			return exitUsage, fmt.Errorf("write state: %w", err)
		}
	}
	return code, nil
}
