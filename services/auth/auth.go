package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"vegholic-api/apperror"
	"vegholic-api/locks"
	"vegholic-api/models"
	"vegholic-api/store"
)

// DefaultName is given to users who verify without telling us their name.
const DefaultName = "VegHolic User"

// Verifier decides whether code is the OTP sent to phone.
type Verifier interface {
	Verify(ctx context.Context, phone, code string) bool
}

// StaticCodeVerifier accepts one fixed code for every phone.
type StaticCodeVerifier struct {
	Code string
}

func (v StaticCodeVerifier) Verify(_ context.Context, _, code string) bool {
	return v.Code != "" && code == v.Code
}

type OTPChallenge struct {
	Phone   string `json:"phone"`
	OTP     string `json:"otp"`
	Message string `json:"message"`
}

type Session struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// Service runs the mock OTP login. No SMS is sent: the demo code is
// returned to the caller.
type Service struct {
	store    store.Store
	verifier Verifier
	issuer   TokenIssuer
	locker   locks.Locker
	logger   *zap.Logger
	code     string
	now      func() time.Time
}

func NewService(s store.Store, code string, issuer TokenIssuer, locker locks.Locker, logger *zap.Logger) *Service {
	return &Service{
		store:    s,
		verifier: StaticCodeVerifier{Code: code},
		issuer:   issuer,
		locker:   locker,
		logger:   logger,
		code:     code,
		now:      time.Now,
	}
}

// WithVerifier swaps the code check, e.g. for a real SMS provider.
func (s *Service) WithVerifier(v Verifier) *Service {
	s.verifier = v
	return s
}

func (s *Service) RequestOTP(phone string) (OTPChallenge, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return OTPChallenge{}, apperror.InvalidArgument("phone is required")
	}
	s.logger.Info("otp requested", zap.String("phone", phone))
	return OTPChallenge{Phone: phone, OTP: s.code, Message: fmt.Sprintf("Use %s to login (demo)", s.code)}, nil
}

// VerifyOTP checks the code and logs the phone in, creating the user on
// first login.
func (s *Service) VerifyOTP(ctx context.Context, phone, code, name string) (Session, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return Session{}, apperror.InvalidArgument("phone is required")
	}
	if !s.verifier.Verify(ctx, phone, code) {
		return Session{}, apperror.InvalidArgument("invalid OTP")
	}

	unlock, err := s.locker.Lock(ctx, "lock:phone:"+phone)
	if err != nil {
		return Session{}, err
	}
	defer unlock()

	now := s.now().UTC()
	var user models.User
	err = s.store.FindOne(ctx, store.UserCollection, bson.M{"phone": phone}, &user)
	switch {
	case err == nil:
		return s.refresh(ctx, user, name, now)
	case errors.Is(err, store.ErrNotFound):
	default:
		return Session{}, err
	}

	if name == "" {
		name = DefaultName
	}
	user = models.User{Phone: phone, Name: name, CreatedAt: now, UpdatedAt: now}
	id, err := s.store.Insert(ctx, store.UserCollection, user)
	if err != nil {
		return Session{}, err
	}
	user.ID, _ = store.ParseID(id)

	token, err := s.issuer.Issue(user)
	if err != nil {
		return Session{}, err
	}
	if _, err := s.store.UpdateOne(ctx, store.UserCollection, store.ByID(user.ID), bson.M{"token": token}); err != nil {
		return Session{}, err
	}
	s.logger.Info("user registered", zap.String("userId", id))
	return Session{UserID: id, Token: token}, nil
}

func (s *Service) refresh(ctx context.Context, user models.User, name string, now time.Time) (Session, error) {
	token := user.Token
	if token == "" || !s.issuer.Accepts(token) {
		issued, err := s.issuer.Issue(user)
		if err != nil {
			return Session{}, err
		}
		token = issued
	}
	if user.Name == "" {
		user.Name = name
	}

	patch := bson.M{"token": token, "updated_at": now}
	if user.Name != "" {
		patch["name"] = user.Name
	}
	if _, err := s.store.UpdateOne(ctx, store.UserCollection, store.ByID(user.ID), patch); err != nil {
		return Session{}, err
	}
	return Session{UserID: user.ID.Hex(), Token: token}, nil
}
