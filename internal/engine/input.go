package engine

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tartampluch/go-attendance/internal/config"
)

// ValidateInputFile checks that path names an existing .csv file.
func ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrInvalidInputFile, config.ErrFileMissing, path)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s: %s", ErrInvalidInputFile, config.ErrFileIsDir, path)
	}
	if filepath.Ext(path) != config.ExtCSV {
		return fmt.Errorf("%w: %s: %s", ErrInvalidInputFile, config.ErrFileNotCSV, path)
	}
	return nil
}

// DateFromFileName extracts the report end date from an export named
// attendance-report-young-adults-<start>-<end>.csv. It returns false when
// the name does not follow the convention.
func DateFromFileName(path string) (string, bool) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	tokens := strings.Split(stem, config.FileNameSeparator)

	log := slog.With(config.LogKeyComponent, config.CompEngine, config.LogKeyFile, base)

	if len(tokens) != config.FileNameTokenCount {
		log.Debug(config.MsgFileNameNoDate)
		return "", false
	}
	for i, want := range config.FileNamePrefix {
		if tokens[i] != want {
			log.Debug(config.MsgFileNameNoDate)
			return "", false
		}
	}

	date := strings.Join(tokens[config.FileNameDateStart:], config.FileNameSeparator)
	if _, err := time.Parse(config.DateFormatFileName, date); err != nil {
		log.Debug(config.MsgFileNameNoDate, config.LogKeyError, err)
		return "", false
	}

	log.Debug(config.MsgFileNameDate, config.LogKeyDate, date)
	return date, true
}
