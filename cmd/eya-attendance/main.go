package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-attendance/internal/config"
	"github.com/tartampluch/go-attendance/internal/engine"
	"github.com/tartampluch/go-attendance/internal/report"
)

// main is the application entry point.
// It delegates execution to runMain so deferred calls (closing the input
// and the log file) run before the process exits.
func main() {
	os.Exit(runMain(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app carries the state of one invocation.
type app struct {
	opts   config.Options
	envErr error

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// logToFile mirrors the logs into the user cache directory.
	logToFile bool
}

// runMain parses the command line, runs the pipeline and returns the exit code.
func runMain(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, envErr := config.LoadOptions()
	a := &app{
		opts:      opts,
		envErr:    envErr,
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
		logToFile: true,
	}
	return a.execute(args)
}

func (a *app) execute(args []string) int {
	if args == nil {
		// cobra falls back to os.Args on a nil slice.
		args = []string{}
	}
	code := config.ExitCodeSuccess

	cmd := &cobra.Command{
		Use:           config.AppUse,
		Short:         config.AppShort,
		Version:       versionString(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logCloser := setupLogging(a.stderr, a.opts.Debug, a.logToFile)
			if logCloser != nil {
				defer func() {
					_ = logCloser.Close() // Best effort close
				}()
			}
			logStartupInfo()

			start := time.Now()
			var msg string
			code, msg = a.run(args)

			log := slog.With(config.LogKeyComponent, config.CompMain, config.LogKeyExitCode, code)
			if code != config.ExitCodeSuccess {
				log.Error(config.MsgRunFailed)
			} else {
				log.Info(config.MsgAppStop, config.LogKeyDuration, time.Since(start).Milliseconds())
			}

			a.printAndWait(msg)
			return nil
		},
	}
	cmd.SetVersionTemplate(config.VersionTemplate)
	cmd.SetArgs(args)
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	flags := cmd.Flags()
	flags.BoolVar(&a.opts.Debug, config.FlagDebug, a.opts.Debug, config.FlagDescDebug)
	flags.StringVar(&a.opts.OutDir, config.FlagOutDir, a.opts.OutDir, config.FlagDescOutDir)
	flags.StringVar(&a.opts.LabelsFile, config.FlagLabels, a.opts.LabelsFile, config.FlagDescLabels)
	flags.BoolVar(&a.opts.Calendar, config.FlagCalendar, a.opts.Calendar, config.FlagDescCalendar)
	flags.BoolVar(&a.opts.VCard, config.FlagVCard, a.opts.VCard, config.FlagDescVCard)
	flags.BoolVar(&a.opts.NoWait, config.FlagNoWait, a.opts.NoWait, config.FlagDescNoWait)

	if err := cmd.Execute(); err != nil {
		// Flag parsing failed before RunE could run.
		fmt.Fprintln(a.stdout, err)
		a.printAndWait(config.MsgUsage)
		return config.ExitCodeArgs
	}
	return code
}

// run executes the pipeline stage by stage. Each stage has its own exit
// code and user message; the first failure ends the run.
func (a *app) run(args []string) (int, string) {
	log := slog.With(config.LogKeyComponent, config.CompMain)
	fail := func(code int, msg string, err error) (int, string) {
		log.Error(msg, config.LogKeyError, err, config.LogKeyExitCode, code)
		return code, fmt.Sprintf("%s\n%v", msg, err)
	}

	// 1. Arguments & input file
	if len(args) != config.ExpectedArgumentCount {
		return config.ExitCodeArgs, config.MsgUsage
	}
	input := args[0]

	if err := engine.ValidateInputFile(input); err != nil {
		return fail(config.ExitCodeInvalidInput, config.MsgInvalidInput, err)
	}

	fileDate, ok := engine.DateFromFileName(input)
	if !ok {
		fmt.Fprintf(a.stdout, config.MsgNoFileDate, config.FileNameNoDateHint)
	}

	// 2. Configuration
	if a.envErr != nil {
		return fail(config.ExitCodeConfiguration, config.MsgConfiguration, a.envErr)
	}
	labels, err := report.NewLabels(a.opts.LabelsFile)
	if err != nil {
		return fail(config.ExitCodeConfiguration, config.MsgConfiguration, err)
	}

	// 3. Header
	f, err := os.Open(input)
	if err != nil {
		return fail(config.ExitCodeHeaderRead, config.MsgHeaderRead, err)
	}
	// Read-only; Close errors are not actionable.
	defer func() { _ = f.Close() }()

	reader := engine.NewReader(f)
	fields, err := engine.ReadHeader(reader)
	if err != nil {
		return fail(config.ExitCodeHeaderRead, config.MsgHeaderRead, err)
	}

	header, err := engine.CanonicalizeHeaders(fields)
	if err != nil {
		return fail(config.ExitCodeHeaderParse, config.MsgHeaderParse, err)
	}
	if header.DroppedInvalid > 0 {
		fmt.Fprintf(a.stdout, config.MsgDroppedInvalid, header.DroppedInvalid)
	}
	if header.DroppedDuplicate > 0 {
		fmt.Fprintf(a.stdout, config.MsgDroppedDup, header.DroppedDuplicate)
	}

	// 4. Roll & absence tracking
	roll, err := engine.BuildRoster(reader, header)
	if err != nil {
		return fail(config.ExitCodeRoster, config.MsgRoster, err)
	}
	if err := engine.CountAbsentWeeks(roll, header); err != nil {
		return fail(config.ExitCodeAbsence, config.MsgAbsence, err)
	}

	// 5. Outputs
	rep := report.Assemble(header, roll, labels)
	outputs, code, msg, err := a.render(rep, fileDate)
	if err != nil {
		return fail(code, msg, err)
	}

	if err := report.WriteAll(outputs); err != nil {
		var werr *report.WriteError
		if errors.As(err, &werr) {
			code, msg = stageOf(werr.Kind)
			return fail(code, msg, err)
		}
		return fail(config.ExitCodeReportWrite, config.MsgReportWrite, err)
	}

	return config.ExitCodeSuccess, config.MsgSuccess
}

// render encodes every requested output in memory so nothing is written
// unless all of them could be produced.
func (a *app) render(rep report.Report, date string) ([]report.Output, int, string, error) {
	dir := a.opts.OutDir

	reportCSV, err := report.EncodeCSV(rep.RosterRows())
	if err != nil {
		return nil, config.ExitCodeReportWrite, config.MsgReportWrite, err
	}
	outreachCSV, err := report.EncodeCSV(rep.OutreachRows())
	if err != nil {
		return nil, config.ExitCodeOutreachWrite, config.MsgOutreachWrite, err
	}

	outputs := []report.Output{
		{Kind: report.KindReport, Path: report.OutputPath(dir, config.ReportBaseName, date, config.ExtCSV), Data: reportCSV},
		{Kind: report.KindOutreach, Path: report.OutputPath(dir, config.OutreachBaseName, date, config.ExtCSV), Data: outreachCSV},
	}

	if a.opts.Calendar {
		ics, err := rep.Calendar()
		if err != nil {
			return nil, config.ExitCodeExportWrite, config.MsgExportWrite, err
		}
		outputs = append(outputs, report.Output{
			Kind: report.KindCalendar,
			Path: report.OutputPath(dir, config.CalendarBaseName, date, config.ExtICS),
			Data: ics,
		})
	}

	if a.opts.VCard {
		vcf, err := rep.Contacts()
		if err != nil {
			return nil, config.ExitCodeExportWrite, config.MsgExportWrite, err
		}
		outputs = append(outputs, report.Output{
			Kind: report.KindContacts,
			Path: report.OutputPath(dir, config.ContactsBaseName, date, config.ExtVCF),
			Data: vcf,
		})
	}

	return outputs, config.ExitCodeSuccess, "", nil
}

// stageOf maps a failed output to its exit code and user message.
func stageOf(k report.Kind) (int, string) {
	switch k {
	case report.KindReport:
		return config.ExitCodeReportWrite, config.MsgReportWrite
	case report.KindOutreach:
		return config.ExitCodeOutreachWrite, config.MsgOutreachWrite
	default:
		return config.ExitCodeExportWrite, config.MsgExportWrite
	}
}

// printAndWait shows msg and keeps the console window open until Enter is
// pressed, so drag-and-drop users can read the outcome.
func (a *app) printAndWait(msg string) {
	fmt.Fprintf(a.stdout, "%s\n\n", msg)
	if a.opts.NoWait {
		return
	}
	fmt.Fprint(a.stdout, config.MsgPressEnter)
	_, _ = bufio.NewReader(a.stdin).ReadString('\n')
}

// versionString reports the build information shown by --version.
func versionString() string {
	return fmt.Sprintf(config.FormatVersion,
		config.Version,
		config.Commit,
		config.Date,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger. Logs go to console (stderr,
// keeping stdout for the user-facing messages) and, when enabled, to a file
// in the user's cache directory.
func setupLogging(console io.Writer, debugMode, toFile bool) io.Closer {
	writers := []io.Writer{console}
	var logFile *os.File

	if toFile {
		if logPath, err := getLogFilePath(); err == nil {
			// O_TRUNC resets logs on every run to prevent indefinite growth.
			f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
			if err == nil {
				writers = append(writers, f)
				logFile = f
			} else {
				fmt.Fprintf(console, config.MsgLogWarning, config.ErrLogFile, logPath, err)
			}
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
