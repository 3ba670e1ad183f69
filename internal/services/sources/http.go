package sources

import (
	"context"
	"fmt"
	"strings"

	"DugoutEdge/internal/domain/models"
	"DugoutEdge/internal/engine"
	"DugoutEdge/pkg/config"
	xhttp "DugoutEdge/pkg/http"
	"DugoutEdge/pkg/logger"
)

// HTTPProvider pulls daily payloads from the analysis service. A 404 for a
// payload is treated the same as a missing file: that source is simply not
// available today.
type HTTPProvider struct {
	baseURL string
	client  *xhttp.Client
	log     *logger.Logger
}

func NewHTTPProvider(cfg *config.Config, log *logger.Logger) *HTTPProvider {
	return &HTTPProvider{
		baseURL: strings.TrimRight(cfg.Sources.AnalysisURL, "/"),
		client:  xhttp.NewClient(xhttp.WithTimeout(cfg.Sources.Timeout)),
		log:     log,
	}
}

func (p *HTTPProvider) Daily(ctx context.Context, date string) (engine.Inputs, error) {
	var in engine.Inputs

	var analysis models.AnalysisPayload
	ok, err := p.getJSON(ctx, "/analysis", date, &analysis)
	if err != nil {
		return in, err
	}
	if ok {
		in.Analysis = &analysis
	}

	var opportunities []models.LooseRecord
	if _, err := p.getJSON(ctx, "/opportunities", date, &opportunities); err != nil {
		return in, err
	}
	in.Opportunities = opportunities

	var lineups models.LineupFeed
	ok, err = p.getJSON(ctx, "/lineups", date, &lineups)
	if err != nil {
		return in, err
	}
	if ok {
		in.Lineups = &lineups
	}

	return in, nil
}

func (p *HTTPProvider) getJSON(ctx context.Context, path, date string, dest interface{}) (bool, error) {
	if p.baseURL == "" {
		return false, fmt.Errorf("analysis url not configured")
	}

	query := map[string][]string{}
	if date != "" {
		query["date"] = []string{date}
	}

	err := p.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         p.baseURL + path,
		QueryParams: query,
	}, dest)
	if err != nil {
		if strings.Contains(err.Error(), "unexpected status 404") {
			if p.log != nil {
				p.log.Debug("payload not available upstream", logger.String("path", path), logger.String("date", date))
			}
			return false, nil
		}
		return false, fmt.Errorf("fetch %s: %w", path, err)
	}
	return true, nil
}
