package report

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-attendance/internal/config"
)

// ErrOutputWrite marks a destination that could not be written.
var ErrOutputWrite = errors.New(config.ErrOutputWrite)

// Kind identifies an output file of a run.
type Kind int

const (
	KindReport Kind = iota
	KindOutreach
	KindCalendar
	KindContacts
)

func (k Kind) String() string {
	switch k {
	case KindReport:
		return "report"
	case KindOutreach:
		return "outreach"
	case KindCalendar:
		return "calendar"
	case KindContacts:
		return "contacts"
	default:
		return "unknown"
	}
}

// Output is one rendered file waiting to be written.
type Output struct {
	Kind Kind
	Path string
	Data []byte
}

// WriteError reports which output could not be written.
type WriteError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", config.ErrOutputWrite, e.Kind, e.Path, e.Err)
}

func (e *WriteError) Unwrap() []error {
	return []error{ErrOutputWrite, e.Err}
}

// OutputPath builds "<dir>/<base>[-<date>]<ext>". An empty date gives the
// generic name.
func OutputPath(dir, base, date, ext string) string {
	name := base
	if date != "" {
		name += config.OutputNameSeparator + date
	}
	return filepath.Join(dir, name+ext)
}

// WriteAll writes every output or none of them. Each file is first staged
// next to its destination; only when all are staged are they renamed into
// place. A file already at a destination is set aside first. On failure,
// staged files are removed, new files are deleted and the set-aside files
// are put back.
func WriteAll(outputs []Output) error {
	staged := make([]string, len(outputs))
	backups := make([]string, len(outputs))
	cleanup := func() {
		for _, tmp := range staged {
			if tmp != "" {
				_ = os.Remove(tmp)
			}
		}
	}

	for i, out := range outputs {
		tmp, err := stage(out)
		if err != nil {
			cleanup()
			return &WriteError{Kind: out.Kind, Path: out.Path, Err: err}
		}
		staged[i] = tmp
	}

	for i, out := range outputs {
		bak, err := setAside(out.Path, staged[i])
		if err != nil {
			cleanup()
			rollback(outputs[:i], backups[:i])
			return &WriteError{Kind: out.Kind, Path: out.Path, Err: fmt.Errorf("%s: %w", config.ErrOutputBackup, err)}
		}
		backups[i] = bak

		if err := os.Rename(staged[i], out.Path); err != nil {
			cleanup()
			if bak != "" {
				restore(out.Path, bak)
			}
			rollback(outputs[:i], backups[:i])
			return &WriteError{Kind: out.Kind, Path: out.Path, Err: err}
		}
		staged[i] = ""

		slog.Info(config.MsgFileWritten,
			config.LogKeyComponent, config.CompReport,
			config.LogKeyFile, out.Path,
			config.LogKeySizeBytes, len(out.Data),
		)
	}

	for _, bak := range backups {
		if bak != "" {
			_ = os.Remove(bak)
		}
	}
	return nil
}

// setAside moves an existing regular file at path out of the way and
// returns where it went. Nothing is moved when path does not exist or is
// not a regular file; the rename into place reports that case.
func setAside(path, staged string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", nil
	}
	bak := staged + config.ExtBackup
	if err := os.Rename(path, bak); err != nil {
		return "", err
	}
	return bak, nil
}

func stage(out Output) (string, error) {
	dir, base := filepath.Split(out.Path)
	if dir == "" {
		dir = "."
	}

	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return "", err
	}
	tmp := f.Name()

	if _, err := f.Write(out.Data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Chmod(tmp, config.FilePermReport); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return tmp, nil
}

func rollback(written []Output, backups []string) {
	for i, out := range written {
		restore(out.Path, backups[i])
	}
}

// restore puts the set-aside file back at path, or removes path when there
// was nothing there before the run.
func restore(path, bak string) {
	if bak != "" {
		if err := os.Rename(bak, path); err == nil {
			slog.Warn(config.MsgRestored,
				config.LogKeyComponent, config.CompReport,
				config.LogKeyFile, path,
			)
		}
		return
	}
	if err := os.Remove(path); err == nil {
		slog.Warn(config.MsgRollback,
			config.LogKeyComponent, config.CompReport,
			config.LogKeyFile, path,
		)
	}
}
