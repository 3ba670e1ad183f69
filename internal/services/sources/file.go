package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"DugoutEdge/internal/domain/models"
	"DugoutEdge/internal/engine"
	"DugoutEdge/pkg/logger"
)

// FileProvider reads daily payloads from <dataDir>/<date>/. Each payload
// file is optional; a day with no files at all yields empty inputs and the
// engine reports an empty run.
type FileProvider struct {
	dataDir string
	log     *logger.Logger
}

func NewFileProvider(dataDir string, log *logger.Logger) *FileProvider {
	return &FileProvider{dataDir: dataDir, log: log}
}

func (p *FileProvider) Daily(ctx context.Context, date string) (engine.Inputs, error) {
	var in engine.Inputs
	if err := ctx.Err(); err != nil {
		return in, err
	}

	dir := filepath.Join(p.dataDir, date)

	var analysis models.AnalysisPayload
	ok, err := p.readJSON(filepath.Join(dir, "analysis.json"), &analysis)
	if err != nil {
		return in, err
	}
	if ok {
		in.Analysis = &analysis
	}

	var opportunities []models.LooseRecord
	if _, err := p.readJSON(filepath.Join(dir, "opportunities.json"), &opportunities); err != nil {
		return in, err
	}
	in.Opportunities = opportunities

	var lineups models.LineupFeed
	ok, err = p.readJSON(filepath.Join(dir, "lineups.json"), &lineups)
	if err != nil {
		return in, err
	}
	if ok {
		in.Lineups = &lineups
	}

	return in, nil
}

// readJSON decodes a payload file into dest. A missing file is not an
// error; a present but unparsable file is.
func (p *FileProvider) readJSON(path string, dest interface{}) (bool, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if p.log != nil {
			p.log.Debug("payload file absent", logger.String("path", path))
		}
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read payload %s: %w", path, err)
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, fmt.Errorf("parse payload %s: %w", path, err)
	}
	return true, nil
}
