package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/firetourneys/arena/internal/models"
	"github.com/firetourneys/arena/internal/store"
)

// Lifecycle advances tournament statuses by the clock: open tournaments move
// to starting once their registration deadline passes, and to live once their
// start time passes. Completion stays an organizer action.
type Lifecycle struct {
	store store.Storage
	sched gocron.Scheduler
}

func New(st store.Storage) (*Lifecycle, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	l := &Lifecycle{store: st, sched: sched}
	if _, err := sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(l.Tick),
	); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Lifecycle) Start() {
	l.sched.Start()
}

func (l *Lifecycle) Stop() error {
	return l.sched.Shutdown()
}

// Tick runs one pass of the status sweep. Exported so tests can drive it
// without waiting on the scheduler.
func (l *Lifecycle) Tick() {
	now := time.Now()

	open, err := l.store.GetTournamentsByStatus(models.StatusOpen)
	if err != nil {
		log.Printf("[scheduler] listing open tournaments failed: %v", err)
		return
	}
	for i := range open {
		t := &open[i]
		switch {
		case !t.StartTime.IsZero() && now.After(t.StartTime):
			l.transition(t.ID, models.StatusLive)
		case !t.RegistrationDeadline.IsZero() && now.After(t.RegistrationDeadline):
			l.transition(t.ID, models.StatusStarting)
		}
	}

	starting, err := l.store.GetTournamentsByStatus(models.StatusStarting)
	if err != nil {
		log.Printf("[scheduler] listing starting tournaments failed: %v", err)
		return
	}
	for i := range starting {
		t := &starting[i]
		if !t.StartTime.IsZero() && now.After(t.StartTime) {
			l.transition(t.ID, models.StatusLive)
		}
	}
}

func (l *Lifecycle) transition(id uint, status string) {
	if _, err := l.store.UpdateTournament(id, map[string]interface{}{"status": status}); err != nil {
		log.Printf("[scheduler] moving tournament %d to %s failed: %v", id, status, err)
	}
}
