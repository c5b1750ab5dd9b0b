package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goldtrust/wallet/internal/auth"
	"github.com/goldtrust/wallet/internal/config"
	"github.com/goldtrust/wallet/internal/ledger"
	"github.com/goldtrust/wallet/internal/services"
	"github.com/goldtrust/wallet/internal/store"
	"github.com/goldtrust/wallet/internal/timers"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := config.Config{
		Env:               "test",
		RateRPS:           1000,
		WithdrawCode:      "GT1024W",
		RestrictionWindow: 10 * time.Minute,
		PaymentWindow:     10 * time.Minute,
		// zero-length mining sessions elapse immediately, so the claim
		// path is testable without sleeping
		MineDuration:  0,
		MineRewardMin: 150000,
		MineRewardMax: 150000,
		CodePrice:     8000,
	}

	s := store.NewMemory()
	ldg := ledger.New(s)
	tm := timers.New(s)
	audit := services.NewAudit(s)
	gate := services.NewRestrictionGate(s, tm)

	hash, err := auth.HashCode(cfg.WithdrawCode)
	require.NoError(t, err)

	tokens := auth.NewTokenManager("test-access", "test-refresh", time.Hour, 24*time.Hour)

	return NewRouter(Deps{
		Cfg:        cfg,
		TM:         tokens,
		Ledger:     ldg,
		Profile:    services.NewProfileService(s, ldg, audit),
		Withdrawal: services.NewWithdrawalService(s, ldg, tm, gate, audit, hash, cfg.PaymentWindow, cfg.RestrictionWindow),
		Mining:     services.NewMiningService(s, ldg, tm, audit, cfg.MineDuration, cfg.MineRewardMin, cfg.MineRewardMax),
		Codes:      services.NewCodesService(ldg, gate, audit, cfg.CodePrice),
		Audit:      audit,
	})
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
	}
	return rec, out
}

func TestWalletFlowOverHTTP(t *testing.T) {
	h := newTestRouter(t)

	// wallet routes require a session
	rec, _ := doJSON(t, h, http.MethodGet, "/api/v1/wallet", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// register and pick up the access token
	rec, out := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"fullName": "Ada Obi",
		"phone":    "08031234567",
		"email":    "ada@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := out["access_token"].(string)
	require.NotEmpty(t, token)

	rec, out = doJSON(t, h, http.MethodGet, "/api/v1/wallet", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 0, out["balance"])
	require.Equal(t, false, out["restricted"])

	// mine and claim (zero-duration session elapses at once)
	rec, _ = doJSON(t, h, http.MethodPost, "/api/v1/mine/start", token, nil)
	require.Equal(t, http.StatusAccepted, rec.Code)
	rec, out = doJSON(t, h, http.MethodPost, "/api/v1/mine/claim", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 150000, out["amount"])

	// a second claim is a conflict
	rec, _ = doJSON(t, h, http.MethodPost, "/api/v1/mine/claim", token, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	// withdrawal request, wrong code, then the right one
	rec, _ = doJSON(t, h, http.MethodPost, "/api/v1/withdrawals", token, map[string]any{
		"account": "0123456789",
		"bank":    "Kuda",
		"amount":  20000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = doJSON(t, h, http.MethodPost, "/api/v1/withdrawals/verify", token, map[string]string{"code": "0000"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, out = doJSON(t, h, http.MethodPost, "/api/v1/withdrawals/verify", token, map[string]string{"code": "gt1024w"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "successful", out["status"])

	rec, out = doJSON(t, h, http.MethodGet, "/api/v1/wallet", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 130000, out["balance"])

	// the pending record is gone
	rec, _ = doJSON(t, h, http.MethodGet, "/api/v1/withdrawals/pending", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// restriction window is armed but still open
	rec, out = doJSON(t, h, http.MethodGet, "/api/v1/restriction", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, false, out["restricted"])
	require.Greater(t, out["remaining_ms"].(float64), 0.0)

	// activation flips the gate flag
	rec, out = doJSON(t, h, http.MethodPost, "/api/v1/activation", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, out["activated"])
}

func TestRegisterValidationOverHTTP(t *testing.T) {
	h := newTestRouter(t)
	rec, out := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"fullName": "Ada Obi",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_input", out["code"])
}

func TestRefreshFlow(t *testing.T) {
	h := newTestRouter(t)
	_, out := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"fullName": "Ada Obi",
		"phone":    "08031234567",
		"email":    "ada@example.com",
	})
	refresh, _ := out["refresh_token"].(string)
	require.NotEmpty(t, refresh)

	rec, out := doJSON(t, h, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, out["access_token"])

	// an access token is not accepted as a refresh token
	access, _ := out["access_token"].(string)
	rec, _ = doJSON(t, h, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh_token": access})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
