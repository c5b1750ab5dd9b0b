package worker

import (
	"sync"
	"time"

	"github.com/goldtrust/wallet/internal/ledger"
	"github.com/goldtrust/wallet/internal/metrics"
	"github.com/goldtrust/wallet/internal/services"
)

// Poller is the recurring wake-up: it re-reads the wall clock on a fixed
// cadence and republishes derived state (balance, restriction, mining
// progress) as gauges. It never blocks callers; all countdown math stays a
// pure function of stored timestamps.
type Poller struct {
	wg   sync.WaitGroup
	stop chan struct{}
}

func StartPoller(interval time.Duration, ldg *ledger.Ledger, gate *services.RestrictionGate, mining *services.MiningService) *Poller {
	p := &Poller{stop: make(chan struct{})}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-p.stop:
				return
			case <-t.C:
				p.observe(ldg, gate, mining)
			}
		}
	}()
	return p
}

func (p *Poller) observe(ldg *ledger.Ledger, gate *services.RestrictionGate, mining *services.MiningService) {
	metrics.BalanceGauge.Set(float64(ldg.Balance()))
	if gate.IsRestricted() {
		metrics.RestrictionActive.Set(1)
	} else {
		metrics.RestrictionActive.Set(0)
	}
	metrics.MiningRemainingSeconds.Set(mining.Status().Remaining.Seconds())
}

func (p *Poller) Stop() {
	close(p.stop)
	p.wg.Wait()
}
