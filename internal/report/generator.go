package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// maxRows caps every listing section so a long history stays readable
const maxRows = 10

// Generator renders health summaries as PDF
type Generator struct {
	now    func() time.Time
	logger *zap.Logger
}

// NewGenerator creates a new Generator
func NewGenerator(logger *zap.Logger) *Generator {
	return &Generator{
		now:    time.Now,
		logger: logger,
	}
}

// Data contains everything a health summary shows
type Data struct {
	UserName     string
	DateRange    string
	Profile      *model.UserProfile
	Predictions  []model.HealthPrediction
	Stats        *model.HealthStats
	Goals        []model.HealthGoal
	Logs         []model.HealthLog
	MoodCheckIns []model.MoodCheckIn
}

// Generate creates a PDF report from the provided data
func (g *Generator) Generate(data *Data) ([]byte, error) {
	g.logger.Info("generating PDF report",
		zap.String("user_name", data.UserName),
		zap.String("date_range", data.DateRange),
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	g.addTitle(pdf, data.UserName, data.DateRange)
	g.addProfile(pdf, data.Profile)
	g.addRiskSummary(pdf, data.Stats, data.Predictions)
	g.addGoals(pdf, data.Goals)
	g.addLogs(pdf, data.Logs)
	g.addMood(pdf, data.MoodCheckIns)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		g.logger.Error("failed to generate PDF", zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	g.logger.Info("PDF report generated successfully",
		zap.Int("size_bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}

func (g *Generator) addTitle(pdf *gofpdf.Fpdf, userName, dateRange string) {
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 10, "Health Summary", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Name: %s", userName), "", 1, "L", false, 0, "")
	if dateRange != "" {
		pdf.CellFormat(0, 8, fmt.Sprintf("Period: %s", dateRange), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated: %s", g.now().Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(10)
}

func (g *Generator) addSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 10, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 10)
}

func (g *Generator) line(pdf *gofpdf.Fpdf, format string, args ...any) {
	pdf.CellFormat(0, 5, fmt.Sprintf(format, args...), "", 1, "L", false, 0, "")
}

func (g *Generator) empty(pdf *gofpdf.Fpdf, text string) {
	pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

func (g *Generator) addProfile(pdf *gofpdf.Fpdf, p *model.UserProfile) {
	g.addSectionHeader(pdf, "Profile")

	if p == nil {
		g.empty(pdf, "No profile recorded.")
		return
	}

	g.line(pdf, "Age: %d", p.Age)
	g.line(pdf, "Gender: %s", p.Gender)
	g.line(pdf, "Height: %.1f cm", p.HeightCm())
	g.line(pdf, "Weight: %.1f kg", p.WeightKg())
	g.line(pdf, "Activity level: %s", strings.ReplaceAll(string(p.ActivityLevel), "_", " "))
	if len(p.HealthConditions) > 0 {
		g.line(pdf, "Conditions: %s", strings.Join(p.HealthConditions, ", "))
	}
	if len(p.Medications) > 0 {
		g.line(pdf, "Medications: %s", strings.Join(p.Medications, ", "))
	}
	if len(p.Allergies) > 0 {
		g.line(pdf, "Allergies: %s", strings.Join(p.Allergies, ", "))
	}
	pdf.Ln(5)
}

func (g *Generator) addRiskSummary(pdf *gofpdf.Fpdf, stats *model.HealthStats, predictions []model.HealthPrediction) {
	g.addSectionHeader(pdf, "Risk Assessments")

	if stats == nil && len(predictions) == 0 {
		g.empty(pdf, "No risk assessments recorded.")
		return
	}

	if stats != nil {
		g.line(pdf, "Total assessments: %d", stats.TotalPredictions)
		g.line(pdf, "Average risk score: %.2f", stats.AverageRiskScore)
		g.line(pdf, "Distribution: %d low, %d medium, %d high",
			stats.RiskDistribution.Low, stats.RiskDistribution.Medium, stats.RiskDistribution.High)
		pdf.Ln(3)
	}

	if len(predictions) > 0 {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, "Recent Assessments:", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)

		for _, p := range predictions[:min(len(predictions), maxRows)] {
			g.line(pdf, "%s: %s risk (%.2f), BMI %.1f",
				p.CreatedAt.Format("2006-01-02"), p.RiskLevel, p.RiskScore, p.BMI)
		}

		// recommendations of the latest assessment only
		if recs := predictions[0].Recommendations; len(recs) > 0 {
			pdf.Ln(2)
			pdf.SetFont("Arial", "B", 10)
			pdf.CellFormat(0, 6, "Latest Recommendations:", "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 10)
			for _, r := range recs {
				g.line(pdf, "  - %s", r)
			}
		}
	}
	pdf.Ln(5)
}

func (g *Generator) addGoals(pdf *gofpdf.Fpdf, goals []model.HealthGoal) {
	g.addSectionHeader(pdf, "Goals")

	if len(goals) == 0 {
		g.empty(pdf, "No goals set.")
		return
	}

	for _, goal := range goals {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, goal.Title, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		g.line(pdf, "  Progress: %.0f / %.0f %s (%.0f%%)", goal.CurrentValue, goal.TargetValue, goal.Unit, goal.Progress()*100)
		g.line(pdf, "  Status: %s", goal.Status)
		pdf.Ln(2)
	}
	pdf.Ln(5)
}

func (g *Generator) addLogs(pdf *gofpdf.Fpdf, logs []model.HealthLog) {
	g.addSectionHeader(pdf, "Logged Measurements")

	if len(logs) == 0 {
		g.empty(pdf, "No measurements logged during this period.")
		return
	}

	byType := make(map[model.LogType][]model.HealthLog)
	var order []model.LogType
	for _, l := range logs {
		if _, seen := byType[l.Type]; !seen {
			order = append(order, l.Type)
		}
		byType[l.Type] = append(byType[l.Type], l)
	}

	for _, t := range order {
		entries := byType[t]

		var total float64
		for _, e := range entries {
			total += e.Value
		}

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, strings.ReplaceAll(string(t), "_", " "), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		g.line(pdf, "  Entries: %d, average %.1f %s", len(entries), total/float64(len(entries)), entries[0].Unit)

		for _, e := range entries[:min(len(entries), maxRows)] {
			if e.SecondaryValue != nil {
				g.line(pdf, "  %s: %.0f/%.0f %s", e.LoggedAt.Format("2006-01-02 15:04"), e.Value, *e.SecondaryValue, e.Unit)
				continue
			}
			g.line(pdf, "  %s: %.1f %s", e.LoggedAt.Format("2006-01-02 15:04"), e.Value, e.Unit)
		}
		pdf.Ln(2)
	}
	pdf.Ln(5)
}

func (g *Generator) addMood(pdf *gofpdf.Fpdf, checkIns []model.MoodCheckIn) {
	g.addSectionHeader(pdf, "Mood Check-Ins")

	if len(checkIns) == 0 {
		g.empty(pdf, "No check-ins recorded during this period.")
		return
	}

	counts := make(map[model.Mood]int)
	for _, c := range checkIns {
		counts[c.Mood]++
	}
	for _, m := range []model.Mood{model.MoodGreat, model.MoodGood, model.MoodOkay, model.MoodLow, model.MoodBad} {
		if counts[m] > 0 {
			g.line(pdf, "%s: %d days", m, counts[m])
		}
	}
	pdf.Ln(3)

	for _, c := range checkIns[:min(len(checkIns), maxRows)] {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, c.CheckedInAt.Format("2006-01-02"), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		g.line(pdf, "  Mood: %s, energy %d/5, stress %d/5, sleep %.1f h", c.Mood, c.EnergyLevel, c.StressLevel, c.SleepHours)
		if c.Notes != "" {
			g.line(pdf, "  Notes: %s", c.Notes)
		}
	}
	pdf.Ln(5)
}
