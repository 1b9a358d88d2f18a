package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	authservice "github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/auth"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/lifecycle"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/unitofwork"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/measure"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/user"
)

func (s *Server) MountUsers() {
	loginRequired := LoginRequired(s.authService.Authorizer)

	s.handler.GET("/users/me", s.GetMe, loginRequired)
	s.handler.PATCH("/users/me/profile", s.UpdateProfile, loginRequired)
}

func (s *Server) getLifecycleUoW() *unitofwork.UnitOfWork[*lifecycle.AtomicContext] {
	return unitofwork.New[*lifecycle.AtomicContext](
		s.db,
		lifecycle.NewAtomicContext,
		s.msgBus,
		s.logger,
	)
}

// Measurement is a value with an explicit unit, converted to the
// canonical unit at this boundary.
type Measurement struct {
	Value float64 `json:"value" validate:"required,gt=0"`
	Unit  string  `json:"unit" validate:"required"`
}

type updateProfileReq struct {
	Age           *int         `json:"age,omitempty" validate:"omitempty,gte=13,lte=120"`
	Gender        *string      `json:"gender,omitempty"`
	Height        *Measurement `json:"height,omitempty"`
	Weight        *Measurement `json:"weight,omitempty"`
	ActivityLevel *string      `json:"activity_level,omitempty"`
	Goal          *string      `json:"goal,omitempty"`
}

type profileResp struct {
	UserID            string   `json:"user_id"`
	Email             string   `json:"email"`
	Age               *int     `json:"age,omitempty"`
	Gender            *string  `json:"gender,omitempty"`
	HeightCm          *float64 `json:"height_cm,omitempty"`
	WeightKg          *float64 `json:"weight_kg,omitempty"`
	ActivityLevel     string   `json:"activity_level"`
	Goal              string   `json:"goal"`
	BMI               *float64 `json:"bmi,omitempty"`
	BMR               *int     `json:"bmr,omitempty"`
	DailyCalorieGoal  int      `json:"daily_calorie_goal"`
	ProfileCompletion int      `json:"profile_completion"`
	Points            int      `json:"points"`
	Level             int      `json:"level"`
	StreakCurrent     int      `json:"streak_current"`
	StreakLongest     int      `json:"streak_longest"`
}

func toProfileResp(u *user.User) profileResp {
	var gender *string
	if u.Profile.Gender != nil {
		g := string(*u.Profile.Gender)
		gender = &g
	}
	return profileResp{
		UserID:            u.UserID,
		Email:             u.Email,
		Age:               u.Profile.Age,
		Gender:            gender,
		HeightCm:          u.Profile.HeightCm,
		WeightKg:          u.Profile.WeightKg,
		ActivityLevel:     string(u.Profile.ActivityLevel),
		Goal:              string(u.Profile.Goal),
		BMI:               u.BMI,
		BMR:               u.BMR,
		DailyCalorieGoal:  u.DailyCalorieGoal,
		ProfileCompletion: u.Profile.Completion(),
		Points:            u.Gamification.Points,
		Level:             u.Gamification.Level,
		StreakCurrent:     u.Gamification.StreakCurrent,
		StreakLongest:     u.Gamification.StreakLongest,
	}
}

func (s *Server) GetMe(c echo.Context) error {
	tokenData := c.Get(KeyCurrentUser).(*authservice.AccessTokenData)

	uow := s.getLifecycleUoW()

	u, err := s.lifecycleService.GetUser(c.Request().Context(), uow, tokenData.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return JsonError(c, http.StatusNotFound, "user not found")
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, toProfileResp(u))
}

// UpdateProfile converts the incoming measurements to canonical units,
// builds a profile delta and routes it through the lifecycle service so
// derived fields are recomputed in the same transaction.
func (s *Server) UpdateProfile(c echo.Context) error {
	tokenData := c.Get(KeyCurrentUser).(*authservice.AccessTokenData)

	var b updateProfileReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	delta, err := profileDelta(b)
	if err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	uow := s.getLifecycleUoW()

	u, err := s.lifecycleService.OnProfileWrite(c.Request().Context(), uow, tokenData.UserID, delta)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return JsonError(c, http.StatusNotFound, "user not found")
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, toProfileResp(u))
}

func profileDelta(b updateProfileReq) (user.ProfileDelta, error) {
	var delta user.ProfileDelta

	delta.Age = b.Age

	if b.Gender != nil {
		g, err := user.ParseGender(*b.Gender)
		if err != nil {
			return delta, err
		}
		delta.Gender = &g
	}
	if b.Height != nil {
		cm, err := measure.ToCanonical(b.Height.Value, measure.Unit(b.Height.Unit), measure.Height)
		if err != nil {
			return delta, err
		}
		delta.HeightCm = &cm
	}
	if b.Weight != nil {
		kg, err := measure.ToCanonical(b.Weight.Value, measure.Unit(b.Weight.Unit), measure.Weight)
		if err != nil {
			return delta, err
		}
		delta.WeightKg = &kg
	}
	if b.ActivityLevel != nil {
		l, err := user.ParseActivityLevel(*b.ActivityLevel)
		if err != nil {
			return delta, err
		}
		delta.ActivityLevel = &l
	}
	if b.Goal != nil {
		g, err := user.ParseGoal(*b.Goal)
		if err != nil {
			return delta, err
		}
		delta.Goal = &g
	}

	return delta, nil
}
