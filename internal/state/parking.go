package state

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/securespot/securespot-go/internal/config"
	"github.com/securespot/securespot-go/internal/model"
	"github.com/securespot/securespot-go/internal/sched"
	"github.com/securespot/securespot-go/internal/store"
)

// ParkingSnapshot is the once-per-second derived view of the held record.
type ParkingSnapshot struct {
	Token          string
	ElapsedSeconds int64
	Status         model.ParkingStatus
}

// ParkingToken owns the issued parking-token record. Status is purely a view
// of elapsed time: expiry flips it to inactive but the record survives until
// the user removes it.
type ParkingToken struct {
	store store.Store

	mu     sync.RWMutex
	record *model.ParkingTokenRecord
}

func NewParkingToken(st store.Store) *ParkingToken {
	return &ParkingToken{store: st}
}

// Load restores a persisted record. Corrupt or missing data leaves the
// holder empty and is only logged.
func (p *ParkingToken) Load(ctx context.Context) {
	raw, err := p.store.Get(ctx, store.KeyParkingToken)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("error loading parking token")
		return
	}

	var record model.ParkingTokenRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		log.Error().Err(err).Msg("discarding unreadable parking token record")
		return
	}

	p.mu.Lock()
	p.record = &record
	p.mu.Unlock()
}

// Issue records the token with the current timestamp, replacing any prior
// record, and persists it.
func (p *ParkingToken) Issue(ctx context.Context, tokenValue string) error {
	record := model.NewParkingTokenRecord(tokenValue, time.Now())

	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.record = &record
	p.mu.Unlock()

	return p.store.Set(ctx, store.KeyParkingToken, string(raw))
}

// Clear removes the record and its persisted copy.
func (p *ParkingToken) Clear(ctx context.Context) error {
	p.mu.Lock()
	p.record = nil
	p.mu.Unlock()

	return p.store.Delete(ctx, store.KeyParkingToken)
}

// Record returns a copy of the held record, if any.
func (p *ParkingToken) Record() (model.ParkingTokenRecord, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.record == nil {
		return model.ParkingTokenRecord{}, false
	}
	return *p.record, true
}

// Snapshot derives elapsed seconds and status at the given instant.
func (p *ParkingToken) Snapshot(now time.Time) (ParkingSnapshot, bool) {
	record, ok := p.Record()
	if !ok {
		return ParkingSnapshot{}, false
	}
	return ParkingSnapshot{
		Token:          record.Token,
		ElapsedSeconds: record.ElapsedSeconds(now),
		Status:         record.Status(now),
	}, true
}

// Watch recomputes the snapshot at 1 Hz and hands it to onTick while a
// record exists. Ticks while the holder is empty are skipped. The caller
// stops the returned poller on teardown.
func (p *ParkingToken) Watch(onTick func(ParkingSnapshot)) *sched.Poller {
	poller := sched.NewPoller(config.ParkingTickInterval, func(ctx context.Context) {
		snapshot, ok := p.Snapshot(time.Now())
		if !ok {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
		onTick(snapshot)
	})
	poller.Start(true)
	return poller
}
