package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/goldtrust/wallet/internal/api/httpx"
	"github.com/goldtrust/wallet/internal/api/validate"
	"github.com/goldtrust/wallet/internal/auth"
	"github.com/goldtrust/wallet/internal/config"
	"github.com/goldtrust/wallet/internal/ledger"
	"github.com/goldtrust/wallet/internal/metrics"
	"github.com/goldtrust/wallet/internal/middleware"
	"github.com/goldtrust/wallet/internal/models"
	"github.com/goldtrust/wallet/internal/services"
)

type Deps struct {
	Cfg        config.Config
	TM         *auth.TokenManager
	Ledger     *ledger.Ledger
	Profile    *services.ProfileService
	Withdrawal *services.WithdrawalService
	Mining     *services.MiningService
	Codes      *services.CodesService
	Audit      *services.Audit
}

type tokenResp struct {
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
	ExpiresIn    time.Duration      `json:"expires_in"`
	Profile      models.UserProfile `json:"profile"`
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(d.Cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	am := middleware.NewAuthMiddleware(d.TM)

	r.Route("/api/v1", func(r chi.Router) {
		// ---------- auth ----------
		r.Post("/auth/register", func(w http.ResponseWriter, r *http.Request) {
			var req struct{ FullName, Phone, Email, Referral string }
			if err := httpx.Decode(r, &req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "bad request", nil)
				return
			}
			var errs validate.Errs
			for _, e := range []*validate.ErrField{
				validate.Required("fullName", req.FullName),
				validate.Required("phone", req.Phone),
				validate.Required("email", req.Email),
			} {
				if e != nil {
					errs = append(errs, *e)
				}
			}
			if len(errs) > 0 {
				httpx.WriteError(w, http.StatusBadRequest, "invalid_input", errs.Error(), errs)
				return
			}
			u, err := d.Profile.Register(req.FullName, req.Phone, req.Email, req.Referral)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeTokens(w, d.TM, u)
		})

		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			var req struct{ Phone string }
			if err := httpx.Decode(r, &req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "bad request", nil)
				return
			}
			u, err := d.Profile.Login(req.Phone)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "unknown profile", nil)
				return
			}
			writeTokens(w, d.TM, u)
		})

		r.Post("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				RefreshToken string `json:"refresh_token"`
			}
			if err := httpx.Decode(r, &req); err != nil || req.RefreshToken == "" {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "bad request", nil)
				return
			}
			claims, isRefresh, err := d.TM.ParseAny(req.RefreshToken)
			if err != nil || !isRefresh {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid refresh token", nil)
				return
			}
			u, err := d.Profile.Login(claims.Phone)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "unknown profile", nil)
				return
			}
			writeTokens(w, d.TM, u)
		})

		// ---------- wallet (session required) ----------
		r.Group(func(r chi.Router) {
			r.Use(am.Auth)

			r.Get("/profile", func(w http.ResponseWriter, r *http.Request) {
				u, ok := d.Profile.Profile()
				if !ok {
					httpx.WriteError(w, http.StatusNotFound, "no_profile", "no registered profile", nil)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, u)
			})

			r.Put("/profile", func(w http.ResponseWriter, r *http.Request) {
				var req models.UserProfile
				if err := httpx.Decode(r, &req); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "bad request", nil)
					return
				}
				u, err := d.Profile.Update(req)
				if err != nil {
					writeServiceError(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, u)
			})

			r.Get("/wallet", func(w http.ResponseWriter, r *http.Request) {
				entries := d.Ledger.Entries()
				if len(entries) > 5 {
					entries = entries[:5]
				}
				gate := d.Withdrawal.Gate()
				introSeen, welcomeSeen := d.Profile.Onboarding()
				httpx.WriteJSON(w, http.StatusOK, map[string]any{
					"balance":                  d.Ledger.Balance(),
					"recent":                   entries,
					"restricted":               gate.IsRestricted(),
					"activated":                gate.Activated(),
					"restriction_remaining_ms": gate.Remaining().Milliseconds(),
					"show_intro":               !introSeen,
					"show_welcome":             !welcomeSeen,
				})
			})

			r.Get("/transactions", func(w http.ResponseWriter, r *http.Request) {
				entries := d.Ledger.Entries()
				if t := r.URL.Query().Get("type"); t != "" {
					filtered := entries[:0:0]
					for _, e := range entries {
						if string(e.Type) == t {
							filtered = append(filtered, e)
						}
					}
					entries = filtered
				}
				httpx.WriteJSON(w, http.StatusOK, entries)
			})

			// ---------- mining ----------
			r.Post("/mine/start", func(w http.ResponseWriter, r *http.Request) {
				p, err := d.Mining.Start()
				if err != nil {
					writeServiceError(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusAccepted, p)
			})

			r.Get("/mine/status", func(w http.ResponseWriter, r *http.Request) {
				st := d.Mining.Status()
				httpx.WriteJSON(w, http.StatusOK, map[string]any{
					"mined":        st.Mined,
					"running":      st.Running,
					"elapsed":      st.Elapsed,
					"remaining_ms": st.Remaining.Milliseconds(),
					"reward":       st.Reward,
				})
			})

			r.Post("/mine/claim", func(w http.ResponseWriter, r *http.Request) {
				entry, err := d.Mining.Claim()
				if err != nil {
					writeServiceError(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, entry)
			})

			// ---------- withdrawals ----------
			r.Post("/withdrawals", func(w http.ResponseWriter, r *http.Request) {
				var req struct {
					Account string `json:"account"`
					Bank    string `json:"bank"`
					Amount  int64  `json:"amount"`
				}
				if err := httpx.Decode(r, &req); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "bad request", nil)
					return
				}
				var errs validate.Errs
				for _, e := range []*validate.ErrField{
					validate.Digits("account", req.Account),
					validate.Required("bank", req.Bank),
					validate.MinInt("amount", req.Amount, 1),
				} {
					if e != nil {
						errs = append(errs, *e)
					}
				}
				if len(errs) > 0 {
					httpx.WriteError(w, http.StatusBadRequest, "invalid_input", errs.Error(), errs)
					return
				}
				p, err := d.Withdrawal.Request(req.Account, req.Bank, req.Amount)
				if err != nil {
					writeServiceError(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusCreated, p)
			})

			r.Get("/withdrawals/pending", func(w http.ResponseWriter, r *http.Request) {
				p, ok := d.Withdrawal.Pending()
				if !ok {
					httpx.WriteError(w, http.StatusNotFound, "missing_pending_withdrawal", "no pending withdrawal", nil)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, p)
			})

			r.Delete("/withdrawals/pending", func(w http.ResponseWriter, r *http.Request) {
				d.Withdrawal.Cancel()
				w.WriteHeader(http.StatusNoContent)
			})

			r.Post("/withdrawals/verify", func(w http.ResponseWriter, r *http.Request) {
				var req struct{ Code string }
				if err := httpx.Decode(r, &req); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "bad request", nil)
					return
				}
				entry, err := d.Withdrawal.Verify(req.Code)
				if err != nil {
					writeServiceError(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, entry)
			})

			// ---------- restriction / activation ----------
			r.Get("/restriction", func(w http.ResponseWriter, r *http.Request) {
				gate := d.Withdrawal.Gate()
				httpx.WriteJSON(w, http.StatusOK, map[string]any{
					"restricted":   gate.IsRestricted(),
					"activated":    gate.Activated(),
					"remaining_ms": gate.Remaining().Milliseconds(),
				})
			})

			r.Post("/activation", func(w http.ResponseWriter, r *http.Request) {
				d.Withdrawal.Activate()
				httpx.WriteJSON(w, http.StatusOK, map[string]any{"activated": true})
			})

			// ---------- codes / topup ----------
			r.Post("/codes/buy", func(w http.ResponseWriter, r *http.Request) {
				var req struct{ Name, Phone, Reference, Note string }
				if err := httpx.Decode(r, &req); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "bad request", nil)
					return
				}
				entry, err := d.Codes.RequestCode(req.Name, req.Phone, req.Reference, req.Note)
				if err != nil {
					writeServiceError(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusCreated, entry)
			})

			r.Post("/topup", func(w http.ResponseWriter, r *http.Request) {
				var req struct{ Amount int64 }
				if err := httpx.Decode(r, &req); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "bad request", nil)
					return
				}
				entry, err := d.Codes.TopUp(req.Amount)
				if err != nil {
					writeServiceError(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusCreated, entry)
			})

			r.Get("/audit", func(w http.ResponseWriter, r *http.Request) {
				httpx.WriteJSON(w, http.StatusOK, d.Audit.Records())
			})
		})
	})

	return r
}

func writeTokens(w http.ResponseWriter, tm *auth.TokenManager, u models.UserProfile) {
	access, refresh, exp, err := tm.GeneratePair(u.Phone, u.FullName)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "token_error", "token generation failed", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResp{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    time.Until(exp).Truncate(time.Second),
		Profile:      u,
	})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input", err.Error(), nil)
	case errors.Is(err, services.ErrInsufficientBalance):
		httpx.WriteError(w, http.StatusBadRequest, "insufficient_balance", err.Error(), nil)
	case errors.Is(err, services.ErrInvalidCode):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_code", err.Error(), nil)
	case errors.Is(err, services.ErrNoPendingWithdrawal):
		httpx.WriteError(w, http.StatusNotFound, "missing_pending_withdrawal", err.Error(), nil)
	case errors.Is(err, services.ErrRestricted):
		httpx.WriteError(w, http.StatusForbidden, "restricted", err.Error(), nil)
	case errors.Is(err, services.ErrMiningActive), errors.Is(err, services.ErrMiningNotFinished), errors.Is(err, services.ErrAlreadyMined):
		httpx.WriteError(w, http.StatusConflict, "mining_conflict", err.Error(), nil)
	case errors.Is(err, services.ErrNoProfile):
		httpx.WriteError(w, http.StatusNotFound, "no_profile", err.Error(), nil)
	case errors.Is(err, services.ErrProfileExists):
		httpx.WriteError(w, http.StatusConflict, "profile_exists", err.Error(), nil)
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}
