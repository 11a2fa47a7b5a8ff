package app

import (
	"path/filepath"

	"agdeps/internal/core/errors"
	"agdeps/internal/shared/util"
)

// writeArtifacts persists the rendered report and graph under the
// configured output directory. The report is written first so a failed
// graph write still leaves the report behind.
func (s *Service) writeArtifacts(reportContent, dotContent string) (string, string, error) {
	reportPath := filepath.Join(s.cfg.OutputDir, s.cfg.Report.File)
	if err := util.WriteStringWithDirs(reportPath, reportContent, 0o644); err != nil {
		return "", "", errors.AddContext(
			errors.Wrap(err, errors.CodeOutputFailure, "write dependency report"),
			errors.CtxPath, reportPath)
	}

	dotPath := filepath.Join(s.cfg.OutputDir, s.cfg.Graph.File)
	if err := util.WriteStringWithDirs(dotPath, dotContent, 0o644); err != nil {
		return "", "", errors.AddContext(
			errors.Wrap(err, errors.CodeOutputFailure, "write dependency graph"),
			errors.CtxPath, dotPath)
	}

	return reportPath, dotPath, nil
}
