package stubapi

import (
	"math"
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 100
	maxPageSize     = 100
)

// Assessment is the outcome of the stub risk model
type Assessment struct {
	BMI             float64
	Score           float64
	Level           model.RiskLevel
	Recommendations []string
}

// Assess scores a prediction form with a fixed additive model.
// It exists so the client can be exercised end to end; it is not a clinical model.
func Assess(req *model.PredictionRequest) Assessment {
	bmi := 0.0
	if req.HeightCm > 0 {
		m := req.HeightCm / 100
		bmi = req.WeightKg / (m * m)
	}

	score := 0.05
	var recs []string

	switch {
	case bmi >= 30:
		score += 0.25
		recs = append(recs, "Work with a professional on a weight management plan")
	case bmi >= 25:
		score += 0.1
		recs = append(recs, "Aim for a gradual reduction of body weight")
	case bmi > 0 && bmi < 18.5:
		score += 0.05
		recs = append(recs, "Discuss a healthy weight gain plan with a professional")
	}

	switch {
	case req.Age >= 60:
		score += 0.2
	case req.Age >= 45:
		score += 0.1
	}

	if req.Smoking {
		score += 0.25
		recs = append(recs, "Quitting smoking is the single largest risk reduction available")
	}

	if req.ExerciseHoursPerWeek < 2.5 {
		score += 0.1
		recs = append(recs, "Build up to at least 150 minutes of moderate exercise per week")
	}

	if req.SystolicBP != nil && *req.SystolicBP >= 140 || req.DiastolicBP != nil && *req.DiastolicBP >= 90 {
		score += 0.15
		recs = append(recs, "Monitor your blood pressure and reduce salt intake")
	}
	if req.Cholesterol != nil && *req.Cholesterol >= 240 {
		score += 0.1
		recs = append(recs, "Have your cholesterol reviewed by a doctor")
	}
	if req.Glucose != nil && *req.Glucose >= 126 {
		score += 0.1
		recs = append(recs, "Get tested for diabetes")
	}

	score = math.Min(1, score)
	score = math.Round(score*100) / 100

	level := model.RiskLevelLow
	switch {
	case score >= 0.6:
		level = model.RiskLevelHigh
	case score >= 0.3:
		level = model.RiskLevelMedium
	}

	if len(recs) == 0 {
		recs = []string{"Keep up your current healthy lifestyle"}
	}

	return Assessment{
		BMI:             math.Round(bmi*100) / 100,
		Score:           score,
		Level:           level,
		Recommendations: recs,
	}
}

// validForm mirrors the backend's field constraints
func validForm(c *gin.Context, req *model.PredictionRequest) bool {
	switch {
	case req.Age < 1 || req.Age > 120:
		unprocessable(c, "age", "Age must be between 1 and 120")
	case req.HeightCm < 50 || req.HeightCm > 250:
		unprocessable(c, "height_cm", "Height must be between 50 and 250 cm")
	case req.WeightKg < 10 || req.WeightKg > 300:
		unprocessable(c, "weight_kg", "Weight must be between 10 and 300 kg")
	case req.ExerciseHoursPerWeek < 0 || req.ExerciseHoursPerWeek > 168:
		unprocessable(c, "exercise_hours_per_week", "Exercise hours must be between 0 and 168")
	default:
		return true
	}
	return false
}

func (s *Server) predict(c *gin.Context) {
	var req model.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		unprocessable(c, "body", "Invalid request body")
		return
	}
	s.storePrediction(c, &req)
}

func (s *Server) predictSimple(c *gin.Context) {
	var req model.SimplePredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		unprocessable(c, "body", "Invalid request body")
		return
	}
	s.storePrediction(c, &model.PredictionRequest{
		Age:                  req.Age,
		HeightCm:             req.HeightCm,
		WeightKg:             req.WeightKg,
		Smoking:              req.Smoking,
		ExerciseHoursPerWeek: req.ExerciseHoursPerWeek,
	})
}

func (s *Server) storePrediction(c *gin.Context, req *model.PredictionRequest) {
	if !validForm(c, req) {
		return
	}

	user := currentUser(c)
	a := Assess(req)

	s.mu.Lock()
	s.nextPredID++
	p := &model.HealthPrediction{
		ID:                   s.nextPredID,
		UserID:               user.ID,
		Age:                  req.Age,
		HeightCm:             req.HeightCm,
		WeightKg:             req.WeightKg,
		BMI:                  a.BMI,
		SystolicBP:           req.SystolicBP,
		DiastolicBP:          req.DiastolicBP,
		Cholesterol:          req.Cholesterol,
		Glucose:              req.Glucose,
		Smoking:              req.Smoking,
		ExerciseHoursPerWeek: req.ExerciseHoursPerWeek,
		RiskScore:            a.Score,
		RiskLevel:            a.Level,
		Recommendations:      a.Recommendations,
		CreatedAt:            s.now().UTC(),
	}
	s.predictions[p.ID] = p
	s.byUser[user.ID] = append(s.byUser[user.ID], p.ID)
	s.mu.Unlock()

	s.logger.Info("prediction stored",
		zap.Int64("user_id", user.ID),
		zap.Int64("prediction_id", p.ID),
		zap.String("risk_level", string(p.RiskLevel)),
	)

	c.JSON(http.StatusOK, p)
}

func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// listPredictions returns the caller's predictions newest first
func (s *Server) listPredictions(c *gin.Context) {
	skip, ok := queryInt(c, "skip", 0)
	if !ok || skip < 0 {
		unprocessable(c, "skip", "skip must be a non-negative integer")
		return
	}
	limit, ok := queryInt(c, "limit", defaultPageSize)
	if !ok || limit < 1 || limit > maxPageSize {
		unprocessable(c, "limit", "limit must be between 1 and 100")
		return
	}

	user := currentUser(c)

	s.mu.RLock()
	ids := slices.Clone(s.byUser[user.ID])
	slices.Reverse(ids)
	out := make([]model.HealthPrediction, 0, limit)
	for i := skip; i < len(ids) && len(out) < limit; i++ {
		out = append(out, *s.predictions[ids[i]])
	}
	s.mu.RUnlock()

	c.JSON(http.StatusOK, out)
}

func (s *Server) getPrediction(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		unprocessable(c, "id", "Invalid prediction id")
		return
	}

	user := currentUser(c)

	s.mu.RLock()
	p, ok := s.predictions[id]
	var out model.HealthPrediction
	if ok {
		out = *p
	}
	s.mu.RUnlock()

	if !ok || out.UserID != user.ID {
		detail(c, http.StatusNotFound, "Prediction not found")
		return
	}
	c.JSON(http.StatusOK, &out)
}

func (s *Server) stats(c *gin.Context) {
	user := currentUser(c)

	var stats model.HealthStats
	var total, ai float64

	s.mu.RLock()
	for _, id := range s.byUser[user.ID] {
		p := s.predictions[id]
		stats.TotalPredictions++
		total += p.RiskScore
		if p.AIPowered {
			ai++
		}
		switch p.RiskLevel {
		case model.RiskLevelLow:
			stats.RiskDistribution.Low++
		case model.RiskLevelMedium:
			stats.RiskDistribution.Medium++
		case model.RiskLevelHigh:
			stats.RiskDistribution.High++
		}
	}
	s.mu.RUnlock()

	if stats.TotalPredictions > 0 {
		n := float64(stats.TotalPredictions)
		stats.AverageRiskScore = math.Round(total/n*1000) / 1000
		stats.AIUsagePercentage = math.Round(ai/n*1000) / 10
	}

	c.JSON(http.StatusOK, &stats)
}
