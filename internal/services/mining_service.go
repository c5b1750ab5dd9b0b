package services

import (
	"encoding/json"
	"math/rand"
	"time"

	"github.com/goldtrust/wallet/internal/ledger"
	"github.com/goldtrust/wallet/internal/metrics"
	"github.com/goldtrust/wallet/internal/models"
	"github.com/goldtrust/wallet/internal/store"
	"github.com/goldtrust/wallet/internal/timers"
)

// MiningService runs the one-shot mining session. The reward is fixed at
// session start and rides in the countdown payload so a reload resumes with
// the same amount; the claim is gated by a persisted flag, never by the
// countdown's elapsed state alone.
type MiningService struct {
	s     store.Store
	ldg   *ledger.Ledger
	tm    *timers.Manager
	audit *Audit

	duration  time.Duration
	rewardMin int64
	rewardMax int64
	randInt   func(n int64) int64
}

type MiningStatus struct {
	Mined     bool
	Running   bool
	Elapsed   bool
	Remaining time.Duration
	Reward    int64
}

func NewMiningService(
	s store.Store,
	ldg *ledger.Ledger,
	tm *timers.Manager,
	audit *Audit,
	duration time.Duration,
	rewardMin, rewardMax int64,
) *MiningService {
	return &MiningService{
		s:         s,
		ldg:       ldg,
		tm:        tm,
		audit:     audit,
		duration:  duration,
		rewardMin: rewardMin,
		rewardMax: rewardMax,
		randInt:   rand.Int63n,
	}
}

// Start arms a mining countdown with a reward drawn from the configured
// range. Rejected after a claim or while a session is still running; a stale
// elapsed-but-unclaimed session is kept so its reward can still be claimed.
func (s *MiningService) Start() (models.TimedProcess, error) {
	if s.mined() {
		return models.TimedProcess{}, ErrAlreadyMined
	}
	if st := s.tm.Query(timers.KindMining); st.Running {
		if !st.Elapsed {
			return models.TimedProcess{}, ErrMiningActive
		}
		return models.TimedProcess{}, ErrMiningNotFinished
	}

	reward := s.rewardMin
	if s.rewardMax > s.rewardMin {
		reward += s.randInt(s.rewardMax - s.rewardMin + 1)
	}
	p := s.tm.Start(timers.KindMining, s.duration, map[string]any{"reward": reward})
	s.audit.Record("mining_started", map[string]any{"reward": reward})
	return p, nil
}

// Status derives the session view purely from stored state and the clock.
func (s *MiningService) Status() MiningStatus {
	st := s.tm.Query(timers.KindMining)
	return MiningStatus{
		Mined:     s.mined(),
		Running:   st.Running,
		Elapsed:   st.Elapsed,
		Remaining: st.Remaining,
		Reward:    payloadInt64(st.Payload, "reward"),
	}
}

// Claim credits the stored reward exactly once. Repeated calls after a claim
// fail with ErrAlreadyMined even if a countdown record lingers.
func (s *MiningService) Claim() (models.LedgerEntry, error) {
	if s.mined() {
		return models.LedgerEntry{}, ErrAlreadyMined
	}
	st := s.tm.Query(timers.KindMining)
	if !st.Running || !st.Elapsed {
		return models.LedgerEntry{}, ErrMiningNotFinished
	}

	reward := payloadInt64(st.Payload, "reward")
	entry := s.ldg.Apply(reward, ledger.EntryInput{
		Type:   models.EntryMine,
		Amount: reward,
		Status: models.StatusClaimed,
	})
	s.s.Set(store.FlagMined, true)
	s.tm.Clear(timers.KindMining)

	metrics.MineClaimsTotal.Inc()
	metrics.LedgerEntriesTotal.WithLabelValues(string(models.EntryMine)).Inc()
	s.audit.Record("mining_claimed", map[string]any{"reward": reward})
	return entry, nil
}

func (s *MiningService) mined() bool {
	var mined bool
	return s.s.Get(store.FlagMined, &mined) && mined
}

// payloadInt64 reads a numeric payload field. Stored payloads round-trip
// through JSON, so numbers usually come back as float64.
func payloadInt64(p map[string]any, key string) int64 {
	switch v := p[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	default:
		return 0
	}
}
