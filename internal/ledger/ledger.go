// Package ledger holds the single source of truth for the player's
// balance and per-game statistics. Engines never touch the balance
// directly; every mutation goes through ApplyDelta / RecordOutcome /
// RecordWinLoss, each of which persists the new snapshot before
// returning.
package ledger

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// DefaultBalance is the bankroll a fresh ledger starts with.
const DefaultBalance = 10000

// GameNames lists every game tracked by the ledger, in lobby order.
var GameNames = []string{
	"blackjack", "poker", "slots", "roulette",
	"baccarat", "craps", "wheel", "dice",
}

// GameStats counts rounds for one game.
type GameStats struct {
	Played int64 `json:"played"`
	Won    int64 `json:"won"`
	Lost   int64 `json:"lost"`
}

// Snapshot is the full persisted state: balance plus statistics.
type Snapshot struct {
	Balance    int64                `json:"balance"`
	TotalGames int64                `json:"total_games"`
	TotalWon   int64                `json:"total_won"`
	TotalLost  int64                `json:"total_lost"`
	Games      map[string]GameStats `json:"games"`
}

// defaultSnapshot returns a fresh snapshot with zeroed stats for every game.
func defaultSnapshot() Snapshot {
	s := Snapshot{
		Balance: DefaultBalance,
		Games:   make(map[string]GameStats, len(GameNames)),
	}
	for _, name := range GameNames {
		s.Games[name] = GameStats{}
	}
	return s
}

// clone deep-copies the snapshot so callers can't alias the ledger's map.
func (s Snapshot) clone() Snapshot {
	out := s
	out.Games = make(map[string]GameStats, len(s.Games))
	for k, v := range s.Games {
		out.Games[k] = v
	}
	return out
}

// Store persists ledger snapshots. Load reports found=false on first run,
// in which case the ledger applies defaults.
type Store interface {
	Save(Snapshot) error
	Load() (snap Snapshot, found bool, err error)
	Clear() error
}

// Observer receives a snapshot copy after every persisted mutation.
type Observer func(Snapshot)

// Ledger serializes all balance and stat mutations behind one mutex so
// concurrent engine calls can't tear a read-modify-write.
type Ledger struct {
	mu        sync.Mutex
	snap      Snapshot
	store     Store
	logger    *log.Logger
	observers []Observer
}

// New loads the persisted snapshot from store, falling back to defaults
// on first run. Stats for games added since the snapshot was written are
// zero-filled.
func New(store Store, logger *log.Logger) (*Ledger, error) {
	snap, found, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}
	if !found {
		snap = defaultSnapshot()
	} else {
		if snap.Games == nil {
			snap.Games = make(map[string]GameStats, len(GameNames))
		}
		for _, name := range GameNames {
			if _, ok := snap.Games[name]; !ok {
				snap.Games[name] = GameStats{}
			}
		}
	}

	logger.Info("ledger loaded", "balance", snap.Balance, "total_games", snap.TotalGames, "fresh", !found)

	return &Ledger{snap: snap, store: store, logger: logger}, nil
}

// Subscribe registers an observer called after every persisted mutation.
// Observers run synchronously under the ledger lock; keep them cheap.
func (l *Ledger) Subscribe(obs Observer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, obs)
}

// Balance returns the current balance.
func (l *Ledger) Balance() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap.Balance
}

// Snapshot returns a copy of the full state.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap.clone()
}

// ApplyDelta adds the signed amount to the balance and persists.
func (l *Ledger) ApplyDelta(amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.snap.Balance += amount
	l.logger.Debug("balance delta", "amount", amount, "balance", l.snap.Balance)
	return l.persist()
}

// RecordOutcome increments the played counter (and the global game count)
// for the given game, plus either its won or lost counter.
func (l *Ledger) RecordOutcome(game string, won bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats, ok := l.snap.Games[game]
	if !ok {
		return fmt.Errorf("ledger: unknown game %q", game)
	}
	stats.Played++
	if won {
		stats.Won++
	} else {
		stats.Lost++
	}
	l.snap.Games[game] = stats
	l.snap.TotalGames++
	return l.persist()
}

// RecordWinLoss adds a positive amount to the total won, or the absolute
// value of a negative amount to the total lost.
func (l *Ledger) RecordWinLoss(amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount > 0 {
		l.snap.TotalWon += amount
	} else {
		l.snap.TotalLost += -amount
	}
	return l.persist()
}

// Reset restores the default snapshot and clears the persisted copy.
func (l *Ledger) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.snap = defaultSnapshot()
	if err := l.store.Clear(); err != nil {
		return fmt.Errorf("clearing ledger store: %w", err)
	}
	l.logger.Info("ledger reset", "balance", l.snap.Balance)
	l.notify()
	return nil
}

// persist saves the snapshot and notifies observers. Callers hold l.mu.
func (l *Ledger) persist() error {
	if err := l.store.Save(l.snap); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	l.notify()
	return nil
}

func (l *Ledger) notify() {
	if len(l.observers) == 0 {
		return
	}
	snap := l.snap.clone()
	for _, obs := range l.observers {
		obs(snap)
	}
}
