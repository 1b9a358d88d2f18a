package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	authservice "github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/auth"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/foodlog"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/summary"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/unitofwork"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/food"
)

func (s *Server) MountFood() {
	loginRequired := LoginRequired(s.authService.Authorizer)

	foodRoutes := s.handler.Group("/food", loginRequired)

	foodRoutes.POST("", s.LogFood)
	foodRoutes.GET("", s.ListFood)
	foodRoutes.GET("/summary/daily", s.GetDailyFoodSummary)
	foodRoutes.DELETE("/:entry_id", s.DeleteFood)
}

func (s *Server) getFoodUoW() *unitofwork.UnitOfWork[*foodlog.AtomicContext] {
	return unitofwork.New[*foodlog.AtomicContext](
		s.db,
		foodlog.NewAtomicContext,
		s.msgBus,
		s.logger,
	)
}

type nutritionReq struct {
	Calories    float64 `json:"calories" validate:"gte=0"`
	Protein     float64 `json:"protein" validate:"gte=0"`
	Carbs       float64 `json:"carbs" validate:"gte=0"`
	Fat         float64 `json:"fat" validate:"gte=0"`
	Fiber       float64 `json:"fiber" validate:"gte=0"`
	Sugar       float64 `json:"sugar" validate:"gte=0"`
	Sodium      float64 `json:"sodium" validate:"gte=0"`
	Cholesterol float64 `json:"cholesterol" validate:"gte=0"`
}

type logFoodReq struct {
	Name      string       `json:"name" validate:"required"`
	Brand     string       `json:"brand"`
	MealType  string       `json:"meal_type" validate:"required"`
	Quantity  float64      `json:"quantity" validate:"required,gt=0"`
	Nutrition nutritionReq `json:"nutrition" validate:"required"`
	Date      string       `json:"date" validate:"required"`
}

type foodEntryResp struct {
	EntryID       string  `json:"entry_id"`
	Name          string  `json:"name"`
	Brand         string  `json:"brand,omitempty"`
	MealType      string  `json:"meal_type"`
	Quantity      float64 `json:"quantity"`
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbs         float64 `json:"carbs"`
	Fat           float64 `json:"fat"`
	TotalCalories float64 `json:"total_calories"`
	Date          string  `json:"date"`
	LoggedAt      string  `json:"logged_at"`
}

func toFoodEntryResp(e *food.Entry) foodEntryResp {
	return foodEntryResp{
		EntryID:       e.EntryID,
		Name:          e.Name,
		Brand:         e.Brand,
		MealType:      string(e.MealType),
		Quantity:      e.Quantity,
		Calories:      e.Nutrition.Calories,
		Protein:       e.Nutrition.Protein,
		Carbs:         e.Nutrition.Carbs,
		Fat:           e.Nutrition.Fat,
		TotalCalories: e.TotalCalories(),
		Date:          e.Date.Format(dateLayout),
		LoggedAt:      e.LoggedAt.Format(time.RFC3339),
	}
}

func (s *Server) LogFood(c echo.Context) error {
	tokenData := c.Get(KeyCurrentUser).(*authservice.AccessTokenData)

	var b logFoodReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	mealType, err := food.ParseMealType(b.MealType)
	if err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}
	date, err := time.Parse(dateLayout, b.Date)
	if err != nil {
		return JsonError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	uow := s.getFoodUoW()

	e, err := s.foodService.LogEntry(
		c.Request().Context(), uow,
		tokenData.UserID, b.Name, b.Brand, mealType, b.Quantity,
		food.Nutrition{
			Calories:    b.Nutrition.Calories,
			Protein:     b.Nutrition.Protein,
			Carbs:       b.Nutrition.Carbs,
			Fat:         b.Nutrition.Fat,
			Fiber:       b.Nutrition.Fiber,
			Sugar:       b.Nutrition.Sugar,
			Sodium:      b.Nutrition.Sodium,
			Cholesterol: b.Nutrition.Cholesterol,
		},
		date,
	)
	if err != nil {
		if errors.Is(err, food.ErrInvalidEntry) {
			return JsonError(c, http.StatusBadRequest, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusCreated, toFoodEntryResp(e))
}

func (s *Server) ListFood(c echo.Context) error {
	tokenData := c.Get(KeyCurrentUser).(*authservice.AccessTokenData)

	date, err := time.Parse(dateLayout, c.QueryParam("date"))
	if err != nil {
		return JsonError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	uow := s.getFoodUoW()

	entries, err := s.foodService.ListByDate(c.Request().Context(), uow, tokenData.UserID, date)
	if err != nil {
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, lo.Map(entries, func(e *food.Entry, _ int) foodEntryResp {
		return toFoodEntryResp(e)
	}))
}

func (s *Server) DeleteFood(c echo.Context) error {
	tokenData := c.Get(KeyCurrentUser).(*authservice.AccessTokenData)

	uow := s.getFoodUoW()

	err := s.foodService.DeleteEntry(c.Request().Context(), uow, tokenData.UserID, c.Param("entry_id"))
	if err != nil {
		if errors.Is(err, food.ErrEntryNotFound) {
			return JsonError(c, http.StatusNotFound, "food entry not found")
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.NoContent(http.StatusNoContent)
}

type mealBucketResp struct {
	Calories float64 `json:"calories"`
	Count    int     `json:"count"`
}

type dailyFoodSummaryResp struct {
	Date          string                    `json:"date"`
	TotalCalories float64                   `json:"total_calories"`
	TotalProtein  float64                   `json:"total_protein"`
	TotalCarbs    float64                   `json:"total_carbs"`
	TotalFat      float64                   `json:"total_fat"`
	TotalFiber    float64                   `json:"total_fiber"`
	MealBreakdown map[string]mealBucketResp `json:"meal_breakdown"`
}

func (s *Server) GetDailyFoodSummary(c echo.Context) error {
	tokenData := c.Get(KeyCurrentUser).(*authservice.AccessTokenData)

	date, err := time.Parse(dateLayout, c.QueryParam("date"))
	if err != nil {
		return JsonError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	uow := s.getFoodUoW()

	d, err := s.foodService.DailySummary(c.Request().Context(), uow, tokenData.UserID, date)
	if err != nil {
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, toDailyFoodSummaryResp(date, d))
}

func toDailyFoodSummaryResp(date time.Time, d summary.Daily) dailyFoodSummaryResp {
	breakdown := make(map[string]mealBucketResp, len(d.MealBreakdown))
	for meal, bucket := range d.MealBreakdown {
		breakdown[string(meal)] = mealBucketResp{Calories: bucket.Calories, Count: bucket.Count}
	}
	return dailyFoodSummaryResp{
		Date:          date.Format(dateLayout),
		TotalCalories: d.TotalCalories,
		TotalProtein:  d.TotalProtein,
		TotalCarbs:    d.TotalCarbs,
		TotalFat:      d.TotalFat,
		TotalFiber:    d.TotalFiber,
		MealBreakdown: breakdown,
	}
}
