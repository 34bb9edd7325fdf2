package analyzerclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creative-audit-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultTimeout = 90 * time.Second

type Client interface {
	Score(ctx context.Context, req ScoreRequest) (*ScoreResponse, error)
}

type ScoreCreative struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Format       string  `json:"format"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	Impressions  int64   `json:"impressions"`
	Clicks       int64   `json:"clicks"`
	Conversions  int64   `json:"conversions"`
	CTR          float64 `json:"ctr"`
}

type ScorePolicy struct {
	ID              string   `json:"id"`
	BrandGuidelines []string `json:"brand_guidelines"`
	MinCTR          float64  `json:"min_ctr"`
	MinConversions  int64    `json:"min_conversions"`
	MaxFrequency    float64  `json:"max_frequency"`
}

type ScoreRequest struct {
	Creative ScoreCreative `json:"creative"`
	Policy   ScorePolicy   `json:"policy"`
}

type ScoreIssue struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

type ScoreResponse struct {
	ComplianceScore  float64      `json:"compliance_score"`
	PerformanceScore float64      `json:"performance_score"`
	Status           string       `json:"status"`
	Issues           []ScoreIssue `json:"issues"`
	Recommendations  []string     `json:"recommendations"`
}

// StatusError é uma resposta não-200 do motor de análise
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("motor de análise respondeu %d: %s", e.StatusCode, e.Body)
}

type AnalyzerClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg config.Analyzer) *AnalyzerClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &AnalyzerClient{
		baseURL:    cfg.URL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *AnalyzerClient) Score(ctx context.Context, scoreReq ScoreRequest) (*ScoreResponse, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "/v1/score")

	body, err := json.Marshal(scoreReq)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar a requisição: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"creative_id": scoreReq.Creative.ID,
		"status":      resp.StatusCode,
		"duration":    time.Since(startTime).String(),
	}).Debug("Resposta do motor de análise")

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var response ScoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return &response, nil
}
