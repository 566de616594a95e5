package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/abhishek622/interviewdesk/internal/config"
	"github.com/abhishek622/interviewdesk/internal/console"
	"github.com/abhishek622/interviewdesk/internal/logger"
	"github.com/abhishek622/interviewdesk/internal/workflow"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// app carries what every command shares: flags, streams and the console.
type app struct {
	out    io.Writer
	errOut io.Writer
	in     io.Reader

	yes  bool
	lang string
	// recordingPath is the file named on the upload command line.
	recordingPath string

	cfg     *config.Config
	logger  *zap.Logger
	prompt  *prompter
	console *console.Console
}

// open builds the console without touching the network.
func (a *app) open() error {
	if a.console != nil {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return withCode(exitUsage, err)
	}
	if a.lang != "" {
		cfg.UI.Lang = a.lang
	}
	log, err := logger.NewLogger(cfg.Env)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	a.cfg = cfg
	a.logger = log
	a.prompt = &prompter{in: bufio.NewReader(a.in), out: a.errOut, yes: a.yes, recordingPath: a.recordingPath}
	c, err := console.New(console.Options{
		Config:   cfg,
		Logger:   log,
		Prompter: a.prompt,
		Notifier: &notifier{out: a.out, errOut: a.errOut},
		OnLogin: func(loginURL string) {
			fmt.Fprintf(a.errOut, "session ended, sign in again at %s\n", loginURL)
		},
	})
	if err != nil {
		return withCode(exitUsage, err)
	}
	a.console = c
	return nil
}

// start opens the console and runs its start-up sequence.
func (a *app) start(ctx context.Context) error {
	if err := a.open(); err != nil {
		return err
	}
	return reported(a.console.Init(ctx))
}

func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, withCode(exitUsage, fmt.Errorf("invalid interview id %q", s))
	}
	return id, nil
}

type notifier struct {
	out    io.Writer
	errOut io.Writer
}

func (n *notifier) Success(msg string) {
	fmt.Fprintln(n.out, msg)
}

func (n *notifier) Error(msg string) {
	fmt.Fprintln(n.errOut, "error: "+msg)
}

// prompter answers confirmations on the terminal.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	yes bool
	// recordingPath, when set, is offered instead of asking for a file.
	recordingPath string
}

func (p *prompter) readLine() (string, bool) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (p *prompter) Confirm(_ context.Context, title, message string) workflow.Confirmation[struct{}] {
	if p.yes {
		return workflow.Confirmed(struct{}{})
	}
	fmt.Fprintf(p.out, "%s: %s [y/N] ", title, message)
	line, ok := p.readLine()
	if !ok {
		return workflow.Cancelled[struct{}]()
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return workflow.Confirmed(struct{}{})
	}
	return workflow.Cancelled[struct{}]()
}

func (p *prompter) ChooseRecording(ctx context.Context, title string) workflow.Confirmation[workflow.Recording] {
	path := p.recordingPath
	if path == "" {
		if p.yes {
			return workflow.Cancelled[workflow.Recording]()
		}
		fmt.Fprintf(p.out, "%s: path to the recording (empty to cancel): ", title)
		line, ok := p.readLine()
		if !ok {
			return workflow.Cancelled[workflow.Recording]()
		}
		path = line
	}
	if path == "" {
		return workflow.Cancelled[workflow.Recording]()
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(p.out, "cannot open %s: %v\n", path, err)
		return workflow.Cancelled[workflow.Recording]()
	}
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		_ = f.Close()
		fmt.Fprintf(p.out, "%s is not a readable file\n", path)
		return workflow.Cancelled[workflow.Recording]()
	}

	name := filepath.Base(path)
	if c := p.Confirm(ctx, title, fmt.Sprintf("upload %s (%s)?", name, humanize.Bytes(uint64(info.Size())))); c.Cancelled() {
		_ = f.Close()
		return workflow.Cancelled[workflow.Recording]()
	}
	return workflow.Confirmed(workflow.Recording{Name: name, Body: f, Close: f.Close})
}
