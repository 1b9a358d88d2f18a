package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	authservice "github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/auth"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/healthlog"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/measure"
)

const dateLayout = "2006-01-02"

func (s *Server) MountHealthLogs() {
	loginRequired := LoginRequired(s.authService.Authorizer)

	logRoutes := s.handler.Group("/logs", loginRequired)

	logRoutes.GET("/summary/weekly", s.GetWeeklySummary)
	logRoutes.PUT("/:date", s.UpsertDailyLog)
	logRoutes.GET("/:date", s.GetDailyLog)
}

type waterReq struct {
	Consumed *Measurement `json:"consumed,omitempty"`
	Goal     *Measurement `json:"goal,omitempty"`
}

type sleepReq struct {
	DurationHours *float64 `json:"duration_hours,omitempty" validate:"omitempty,gte=0,lte=24"`
	Quality       *string  `json:"quality,omitempty"`
}

type exerciseReq struct {
	Name           string `json:"name" validate:"required"`
	DurationMin    int    `json:"duration_min" validate:"gte=0"`
	CaloriesBurned int    `json:"calories_burned" validate:"gte=0"`
	Intensity      string `json:"intensity" validate:"required"`
}

type upsertLogReq struct {
	Water      *waterReq     `json:"water,omitempty"`
	StepsCount *int          `json:"steps_count,omitempty" validate:"omitempty,gte=0"`
	StepsGoal  *int          `json:"steps_goal,omitempty" validate:"omitempty,gt=0"`
	Sleep      *sleepReq     `json:"sleep,omitempty"`
	MoodRating *int          `json:"mood_rating,omitempty" validate:"omitempty,gte=1,lte=10"`
	Exercises  []exerciseReq `json:"exercises,omitempty" validate:"omitempty,dive"`
}

type exerciseResp struct {
	Name           string `json:"name"`
	DurationMin    int    `json:"duration_min"`
	CaloriesBurned int    `json:"calories_burned"`
	Intensity      string `json:"intensity"`
}

type scoresResp struct {
	Nutrition *float64 `json:"nutrition,omitempty"`
	Activity  *float64 `json:"activity,omitempty"`
	Sleep     *float64 `json:"sleep,omitempty"`
	Hydration *float64 `json:"hydration,omitempty"`
	Mental    *float64 `json:"mental,omitempty"`
	Overall   *int     `json:"overall,omitempty"`
}

type dailyLogResp struct {
	LogID           string         `json:"log_id"`
	Date            string         `json:"date"`
	WaterConsumedMl float64        `json:"water_consumed_ml"`
	WaterGoalMl     float64        `json:"water_goal_ml"`
	StepsCount      int            `json:"steps_count"`
	StepsGoal       int            `json:"steps_goal"`
	SleepHours      *float64       `json:"sleep_hours,omitempty"`
	SleepQuality    *string        `json:"sleep_quality,omitempty"`
	MoodRating      *int           `json:"mood_rating,omitempty"`
	Exercises       []exerciseResp `json:"exercises"`
	Scores          scoresResp     `json:"scores"`
}

func toDailyLogResp(l *healthlog.DailyLog) dailyLogResp {
	var quality *string
	if l.Sleep.Quality != nil {
		q := string(*l.Sleep.Quality)
		quality = &q
	}
	return dailyLogResp{
		LogID:           l.LogID,
		Date:            l.Date.Format(dateLayout),
		WaterConsumedMl: l.Water.ConsumedMl,
		WaterGoalMl:     l.Water.GoalMl,
		StepsCount:      l.Steps.Count,
		StepsGoal:       l.Steps.Goal,
		SleepHours:      l.Sleep.DurationHours,
		SleepQuality:    quality,
		MoodRating:      l.Mood.Rating,
		Exercises: lo.Map(l.Exercises, func(e healthlog.Exercise, _ int) exerciseResp {
			return exerciseResp{
				Name:           e.Name,
				DurationMin:    e.DurationMin,
				CaloriesBurned: e.CaloriesBurned,
				Intensity:      string(e.Intensity),
			}
		}),
		Scores: scoresResp{
			Nutrition: l.Scores.Nutrition,
			Activity:  l.Scores.Activity,
			Sleep:     l.Scores.Sleep,
			Hydration: l.Scores.Hydration,
			Mental:    l.Scores.Mental,
			Overall:   l.Scores.Overall,
		},
	}
}

// UpsertDailyLog merges the request into the record for the path date,
// creating it on the first write of that day. Water comes in any
// supported unit and is stored in milliliters.
func (s *Server) UpsertDailyLog(c echo.Context) error {
	tokenData := c.Get(KeyCurrentUser).(*authservice.AccessTokenData)

	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		return JsonError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	var b upsertLogReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	delta, err := metricsDelta(b)
	if err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	uow := s.getLifecycleUoW()

	l, err := s.lifecycleService.OnDailyLogWrite(c.Request().Context(), uow, tokenData.UserID, date, delta)
	if err != nil {
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, toDailyLogResp(l))
}

func (s *Server) GetDailyLog(c echo.Context) error {
	tokenData := c.Get(KeyCurrentUser).(*authservice.AccessTokenData)

	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		return JsonError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	uow := s.getLifecycleUoW()

	l, err := s.lifecycleService.GetDailyLog(c.Request().Context(), uow, tokenData.UserID, date)
	if err != nil {
		if errors.Is(err, healthlog.ErrLogNotFound) {
			return JsonError(c, http.StatusNotFound, "no log for this date")
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, toDailyLogResp(l))
}

type weeklySummaryResp struct {
	Start      string   `json:"start"`
	Days       int      `json:"days"`
	AvgSteps   *float64 `json:"avg_steps,omitempty"`
	AvgWaterMl *float64 `json:"avg_water_ml,omitempty"`
	AvgSleep   *float64 `json:"avg_sleep_hours,omitempty"`
	AvgOverall *float64 `json:"avg_overall_score,omitempty"`
}

func (s *Server) GetWeeklySummary(c echo.Context) error {
	tokenData := c.Get(KeyCurrentUser).(*authservice.AccessTokenData)

	start, err := time.Parse(dateLayout, c.QueryParam("start"))
	if err != nil {
		return JsonError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
	}

	uow := s.getLifecycleUoW()

	w, err := s.lifecycleService.WeeklySummary(c.Request().Context(), uow, tokenData.UserID, start)
	if err != nil {
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, weeklySummaryResp{
		Start:      w.Start.Format(dateLayout),
		Days:       w.Days,
		AvgSteps:   w.AvgSteps,
		AvgWaterMl: w.AvgWaterMl,
		AvgSleep:   w.AvgSleep,
		AvgOverall: w.AvgOverall,
	})
}

func metricsDelta(b upsertLogReq) (healthlog.MetricsDelta, error) {
	var delta healthlog.MetricsDelta

	if b.Water != nil {
		if b.Water.Consumed != nil {
			ml, err := measure.ToCanonical(
				b.Water.Consumed.Value, measure.Unit(b.Water.Consumed.Unit), measure.Water)
			if err != nil {
				return delta, err
			}
			delta.WaterConsumedMl = &ml
		}
		if b.Water.Goal != nil {
			ml, err := measure.ToCanonical(
				b.Water.Goal.Value, measure.Unit(b.Water.Goal.Unit), measure.Water)
			if err != nil {
				return delta, err
			}
			delta.WaterGoalMl = &ml
		}
	}

	delta.StepsCount = b.StepsCount
	delta.StepsGoal = b.StepsGoal

	if b.Sleep != nil {
		delta.SleepHours = b.Sleep.DurationHours
		if b.Sleep.Quality != nil {
			q, err := healthlog.ParseSleepQuality(*b.Sleep.Quality)
			if err != nil {
				return delta, err
			}
			delta.SleepQuality = &q
		}
	}

	delta.MoodRating = b.MoodRating

	for _, e := range b.Exercises {
		intensity, err := healthlog.ParseExerciseIntensity(e.Intensity)
		if err != nil {
			return delta, err
		}
		delta.Exercises = append(delta.Exercises, healthlog.Exercise{
			Name:           e.Name,
			DurationMin:    e.DurationMin,
			CaloriesBurned: e.CaloriesBurned,
			Intensity:      intensity,
		})
	}

	return delta, nil
}
