package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"p9e.in/netzero/config"
	"p9e.in/netzero/models"
	"p9e.in/netzero/pkg/carbon"
)

// ScenarioSummary is the slim scenario view included in the report digest.
type ScenarioSummary struct {
	Name        string `json:"name"`
	TargetYear  int    `json:"target_year"`
	Description string `json:"description"`
}

// RegionalSummary counts operating units per geographic grouping.
type RegionalSummary struct {
	State       string `json:"state"`
	GridRegion  string `json:"grid_region"`
	ClimateZone string `json:"climate_zone"`
	Units       int    `json:"units"`
}

// ReportDigest is the context handed to the external text-generation
// collaborator. The collaborator owns the prose; the engine only supplies
// the numbers.
type ReportDigest struct {
	TotalCO2e          float64           `json:"total_co2e"`
	TopActivitySources []carbon.Slice    `json:"top_activity_sources"`
	ActiveScenarios    []ScenarioSummary `json:"active_scenarios"`
	RegionalSummary    []RegionalSummary `json:"regional_summary"`
}

// BuildReportDigest assembles the digest from the current ledger state.
func BuildReportDigest() (*ReportDigest, error) {
	records, err := loadFlatRecords(config.DB, "")
	if err != nil {
		return nil, err
	}

	var scenarios []models.Scenario
	if err := config.DB.Order("created_at DESC").Limit(3).Find(&scenarios).Error; err != nil {
		return nil, err
	}
	summaries := make([]ScenarioSummary, 0, len(scenarios))
	for _, s := range scenarios {
		summaries = append(summaries, ScenarioSummary{
			Name: s.Name, TargetYear: s.TargetYear, Description: s.Description,
		})
	}

	var regional []RegionalSummary
	if err := config.DB.Model(&models.Site{}).
		Select("state, grid_region, climate_zone, COUNT(*) AS units").
		Group("state, grid_region, climate_zone").
		Scan(&regional).Error; err != nil {
		return nil, err
	}

	return &ReportDigest{
		TotalCO2e:          carbon.Total(records),
		TopActivitySources: aggregator.TopActivities(records, 3),
		ActiveScenarios:    summaries,
		RegionalSummary:    regional,
	}, nil
}

// ReportGenerator turns a topic plus digest into report prose. The default
// implementation calls the Gemini REST API; tests can substitute their own.
type ReportGenerator interface {
	Generate(ctx context.Context, topic string, digest *ReportDigest) (string, error)
}

type geminiGenerator struct {
	apiKey string
	model  string
	client *http.Client
}

func newGeminiGenerator(apiKey string) *geminiGenerator {
	return &geminiGenerator{
		apiKey: apiKey,
		model:  "gemini-2.0-flash",
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (g *geminiGenerator) Generate(ctx context.Context, topic string, digest *ReportDigest) (string, error) {
	if topic == "" {
		topic = "General Decarbonization Strategy"
	}
	sources, _ := json.Marshal(digest.TopActivitySources)
	scenarios, _ := json.Marshal(digest.ActiveScenarios)
	regional, _ := json.Marshal(digest.RegionalSummary)

	prompt := fmt.Sprintf(`You are an expert environmental consultant for an industrial mining company.
Generate a detailed strategic analysis section for a report on: %q.

Current Operational Data:
- Total Annual Emissions (Scope 1 & 2): %.2f Metric Tons CO2e
- Top Emission Sources: %s
- Active Planning Scenarios: %s
- Geographical Presence (India): %s

Consider the following Indian regional factors in your analysis:
- Grid Intensity: North/East grids are coal-heavy; Southern grid has more renewables.
- Climate: Tropical/Arid regions have higher cooling loads; Montane regions have efficiency benefits.

Please provide sections in Markdown format: Analysis of Current State, Strategic
Recommendations, and Projected Impact. Keep the tone professional, data-driven,
and concise.`, topic, digest.TotalCO2e, sources, scenarios, regional)

	body, err := json.Marshal(map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("report generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("report generation failed with status %d: %s", resp.StatusCode, data)
	}

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("report generation returned no content")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// reportGenerator is swappable for tests.
var reportGenerator ReportGenerator

func GenerateReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic string `json:"topic"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	generator := reportGenerator
	if generator == nil {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			http.Error(w, "GEMINI_API_KEY is not configured on the server", http.StatusInternalServerError)
			return
		}
		generator = newGeminiGenerator(apiKey)
	}

	digest, err := BuildReportDigest()
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	text, err := generator.Generate(r.Context(), req.Topic, digest)
	if err != nil {
		http.Error(w, "failed to generate report: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"report": text})
}
