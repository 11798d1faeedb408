// Package commands implements the pyfang CLI commands.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/Sumatoshi-tech/pyfang/internal/analyzers/analyze"
	"github.com/Sumatoshi-tech/pyfang/internal/config"
	"github.com/Sumatoshi-tech/pyfang/pkg/pyparse"
)

// pythonExtension is the only input file extension pyfang handles.
const pythonExtension = ".py"

// Service runs one analyzer over a set of paths and formats the results.
type Service struct {
	Analyzer analyze.StaticAnalyzer
	Config   *config.Config
}

// NewService creates a Service for the given analyzer and configuration.
func NewService(analyzer analyze.StaticAnalyzer, cfg *config.Config) *Service {
	color.NoColor = color.NoColor || cfg.NoColor

	return &Service{Analyzer: analyzer, Config: cfg}
}

// Run analyzes every Python file reachable from the given paths and writes
// one formatted report per file. Unreadable or unparseable files are skipped
// with a warning.
func (s *Service) Run(ctx context.Context, paths []string, w io.Writer) error {
	files, err := s.collectFiles(paths)
	if err != nil {
		return err
	}

	for _, file := range files {
		report, analyzeErr := s.analyzeFile(ctx, file)
		if analyzeErr != nil {
			slog.Warn("skipping file", "path", file, "error", analyzeErr)

			continue
		}

		report["path"] = file

		formatErr := s.format(report, w)
		if formatErr != nil {
			return formatErr
		}
	}

	return nil
}

// collectFiles expands the given paths into Python file paths, applying the
// configured exclude globs. A path that is already a file is kept as-is.
func (s *Service) collectFiles(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if !info.IsDir() {
			if s.accept(path) {
				files = append(files, path)
			}

			continue
		}

		walkErr := filepath.WalkDir(path, func(entry string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() || !s.accept(entry) {
				return nil
			}

			files = append(files, entry)

			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walk %s: %w", path, walkErr)
		}
	}

	return files, nil
}

func (s *Service) accept(path string) bool {
	if !strings.HasSuffix(path, pythonExtension) {
		return false
	}

	for _, pattern := range s.Config.Exclude {
		matched, err := filepath.Match(pattern, filepath.Base(path))
		if err == nil && matched {
			return false
		}

		matched, err = filepath.Match(pattern, path)
		if err == nil && matched {
			return false
		}
	}

	return true
}

func (s *Service) analyzeFile(ctx context.Context, path string) (analyze.Report, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	root, err := pyparse.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	report, err := s.Analyzer.Analyze(root)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	return report, nil
}

func (s *Service) format(report analyze.Report, w io.Writer) error {
	switch s.Config.Format {
	case config.FormatJSON:
		return s.Analyzer.FormatReportJSON(report, w)
	case config.FormatYAML:
		return s.Analyzer.FormatReportYAML(report, w)
	default:
		fmt.Fprintf(w, "%s\n", report["path"])

		return s.Analyzer.FormatReport(report, w)
	}
}
