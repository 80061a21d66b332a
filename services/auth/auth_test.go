package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"

	"vegholic-api/apperror"
	"vegholic-api/locks"
	"vegholic-api/models"
	"vegholic-api/store"
)

func newService(t *testing.T, issuer TokenIssuer) (*Service, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	return NewService(s, "1234", issuer, locks.NewLocalLocker(), zaptest.NewLogger(t)), s
}

func findUser(t *testing.T, s store.Store, phone string) models.User {
	t.Helper()
	var u models.User
	require.NoError(t, s.FindOne(context.Background(), store.UserCollection, bson.M{"phone": phone}, &u))
	return u
}

func TestRequestOTP(t *testing.T) {
	svc, _ := newService(t, PhoneTokenIssuer{})

	challenge, err := svc.RequestOTP(" 9876543210 ")
	require.NoError(t, err)
	assert.Equal(t, "9876543210", challenge.Phone)
	assert.Equal(t, "1234", challenge.OTP)

	_, err = svc.RequestOTP("")
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))
}

func TestVerifyOTP_CreatesUserWithDefaultName(t *testing.T) {
	svc, s := newService(t, PhoneTokenIssuer{})

	session, err := svc.VerifyOTP(context.Background(), "9876543210", "1234", "")
	require.NoError(t, err)
	assert.Equal(t, "9876543210-token", session.Token)

	u := findUser(t, s, "9876543210")
	assert.Equal(t, session.UserID, u.ID.Hex())
	assert.Equal(t, DefaultName, u.Name)
	assert.Equal(t, "9876543210-token", u.Token)
}

func TestVerifyOTP_ExistingUserKeepsNameAndToken(t *testing.T) {
	svc, s := newService(t, PhoneTokenIssuer{})
	ctx := context.Background()

	first, err := svc.VerifyOTP(ctx, "9876543210", "1234", "Asha")
	require.NoError(t, err)
	second, err := svc.VerifyOTP(ctx, "9876543210", "1234", "Someone Else")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "Asha", findUser(t, s, "9876543210").Name)

	n, err := s.Count(ctx, store.UserCollection, bson.M{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestVerifyOTP_ExistingUserWithoutNameTakesRequestName(t *testing.T) {
	svc, s := newService(t, PhoneTokenIssuer{})
	ctx := context.Background()
	_, err := s.Insert(ctx, store.UserCollection, models.User{Phone: "111"})
	require.NoError(t, err)

	session, err := svc.VerifyOTP(ctx, "111", "1234", "Ravi")
	require.NoError(t, err)
	assert.Equal(t, "111-token", session.Token)
	assert.Equal(t, "Ravi", findUser(t, s, "111").Name)
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	svc, s := newService(t, PhoneTokenIssuer{})

	_, err := svc.VerifyOTP(context.Background(), "9876543210", "0000", "")
	require.True(t, apperror.Is(err, apperror.KindInvalidArgument))
	assert.Equal(t, "invalid OTP", apperror.MessageOf(err))

	n, err := s.Count(context.Background(), store.UserCollection, bson.M{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

type rejectAll struct{}

func (rejectAll) Verify(context.Context, string, string) bool { return false }

func TestVerifyOTP_CustomVerifier(t *testing.T) {
	svc, _ := newService(t, PhoneTokenIssuer{})
	svc.WithVerifier(rejectAll{})

	_, err := svc.VerifyOTP(context.Background(), "9876543210", "1234", "")
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))
}

func TestVerifyOTP_JWTReissuedWhenStoredTokenIsStale(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)
	svc, s := newService(t, issuer)
	ctx := context.Background()
	id, err := s.Insert(ctx, store.UserCollection, models.User{Phone: "222", Name: "Meera", Token: "222-token"})
	require.NoError(t, err)

	session, err := svc.VerifyOTP(ctx, "222", "1234", "")
	require.NoError(t, err)
	assert.NotEqual(t, "222-token", session.Token)

	userID, err := issuer.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, id, userID)

	again, err := svc.VerifyOTP(ctx, "222", "1234", "")
	require.NoError(t, err)
	assert.Equal(t, session.Token, again.Token)
}

func TestJWTIssuer_RejectsExpiredAndForeignTokens(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Minute)
	user := models.User{ID: primitive.NewObjectID(), Phone: "333"}

	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := issuer.Issue(user)
	require.NoError(t, err)
	assert.False(t, issuer.Accepts(expired))

	other := NewJWTIssuer("other-secret", time.Minute)
	foreign, err := other.Issue(user)
	require.NoError(t, err)
	_, err = issuer.Parse(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_TokensAreUnique(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Minute)
	user := models.User{ID: primitive.NewObjectID(), Phone: "444"}

	a, err := issuer.Issue(user)
	require.NoError(t, err)
	b, err := issuer.Issue(user)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
