package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/Eursukkul/airline-ops/internal/repository"
	"github.com/Eursukkul/airline-ops/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const sessionIssuer = "airline-ops"

// PassengerClaims identify the passenger a session acts for.
type PassengerClaims struct {
	PassengerID uint `json:"passenger_id"`
	jwt.RegisteredClaims
}

type Session struct {
	Passenger *models.Passenger
	Token     string
	ExpiresAt time.Time
}

type SessionService interface {
	Register(ctx context.Context, p *models.Passenger) (*Session, error)
	Login(ctx context.Context, email, passportNumber string) (*Session, error)
	ParseToken(token string) (*PassengerClaims, error)
}

type sessionService struct {
	passengerRepo repository.PassengerRepository
	secret        []byte
	ttl           time.Duration
	log           logger.Logger
	now           func() time.Time
}

func NewSessionService(passengerRepo repository.PassengerRepository, secret string, ttl time.Duration, log logger.Logger) SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &sessionService{
		passengerRepo: passengerRepo,
		secret:        []byte(secret),
		ttl:           ttl,
		log:           log,
		now:           time.Now,
	}
}

func (s *sessionService) Register(ctx context.Context, p *models.Passenger) (*Session, error) {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.PassportNumber = strings.ToUpper(strings.TrimSpace(p.PassportNumber))
	p.Phone = strings.TrimSpace(p.Phone)

	switch {
	case p.FirstName == "" || p.LastName == "":
		return nil, invalid(ErrInvalidInput, "first and last name are required")
	case !strings.Contains(p.Email, "@"):
		return nil, invalid(ErrInvalidInput, "a valid email is required")
	case p.PassportNumber == "":
		return nil, invalid(ErrInvalidInput, "passport number is required")
	}

	if err := s.passengerRepo.Create(ctx, p); err != nil {
		return nil, writeErr(err)
	}
	s.log.Info("passenger registered", "passenger_id", p.ID)
	return s.newSession(p)
}

func (s *sessionService) Login(ctx context.Context, email, passportNumber string) (*Session, error) {
	p, err := s.passengerRepo.FindByCredentials(ctx,
		strings.ToLower(strings.TrimSpace(email)),
		strings.ToUpper(strings.TrimSpace(passportNumber)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidLogin
		}
		return nil, err
	}
	return s.newSession(p)
}

func (s *sessionService) newSession(p *models.Passenger) (*Session, error) {
	now := s.now()
	expires := now.Add(s.ttl)
	claims := &PassengerClaims{
		PassengerID: p.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   strconv.FormatUint(uint64(p.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	return &Session{Passenger: p, Token: token, ExpiresAt: expires}, nil
}

func (s *sessionService) ParseToken(token string) (*PassengerClaims, error) {
	claims := new(PassengerClaims)
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(sessionIssuer))
	if err != nil || claims.PassengerID == 0 {
		return nil, ErrUnauthorizedSession
	}
	return claims, nil
}
