package jwt_test

import (
	"testing"
	"time"

	"github.com/ymjo140/rendezvous-merchant-sub000/config"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "rendezvous"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.CheckInSecret = "checkin-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg)
}

func TestTokenPair_CarriesStore(t *testing.T) {
	svc := newService()

	pair, err := svc.GenerateTokenPair(jwt.Identity{UserID: "u-1", StoreID: "s-1", Email: "owner@bistro.test", Role: "owner"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.ValidateToken(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "s-1", claims.StoreID)
	assert.Equal(t, "owner", claims.Role)

	_, err = svc.ValidateToken(pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestRefreshTokens(t *testing.T) {
	svc := newService()

	pair, err := svc.GenerateTokenPair(jwt.Identity{UserID: "u-1", StoreID: "s-1", Role: "staff"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(refreshed.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "s-1", claims.StoreID)

	_, err = svc.RefreshTokens(pair.AccessToken)
	assert.Error(t, err)
}

func TestCheckInToken(t *testing.T) {
	svc := newService()

	token, err := svc.GenerateCheckInToken("r-1", "s-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token, jwt.CheckInToken)
	require.NoError(t, err)
	assert.Equal(t, "r-1", claims.ReservationID)
	assert.Equal(t, "s-1", claims.StoreID)
	assert.Equal(t, jwt.CheckInToken, claims.Type)

	_, err = svc.ValidateToken(token, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.GenerateCheckInToken("r-1", "s-1", time.Now().Add(-time.Minute))
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := newService().ValidateToken("not-a-token", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = newService().ValidateToken("x", jwt.TokenType("other"))
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("Bearer ")
	assert.Error(t, err)
}
