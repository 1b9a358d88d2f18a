package api

import (
	"log/slog"
	"net"
	"strconv"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/adapter/storage"
	authservice "github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/auth"
	foodservice "github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/foodlog"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/lifecycle"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/unitofwork"
)

type Option func(*Server)

func Addr(host string, port int) Option {
	return func(s *Server) {
		s.addr = net.JoinHostPort(host, strconv.Itoa(port))
	}
}

func Logger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

func DBContext(db storage.DBContext) Option {
	return func(s *Server) {
		s.db = db
	}
}

func AuthService(service *authservice.Service) Option {
	return func(s *Server) {
		s.authService = service
	}
}

func LifecycleService(service *lifecycle.Service) Option {
	return func(s *Server) {
		s.lifecycleService = service
	}
}

func FoodService(service *foodservice.Service) Option {
	return func(s *Server) {
		s.foodService = service
	}
}

func MessageBus(bus unitofwork.MessageBus) Option {
	return func(s *Server) {
		s.msgBus = bus
	}
}
