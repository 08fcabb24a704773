package reminder

import (
	"container/heap"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmhodges/clock"
	"go.uber.org/zap"

	"wellmind/channel"
	"wellmind/logger"
	"wellmind/schedule"
	"wellmind/storage"
	"wellmind/timezone"
)

const (
	// DefaultTick is how often the loop checks the queue for due wake-ups.
	DefaultTick = 20 * time.Second
	// DefaultResendDelay keeps a category quiet after a send before the next
	// eligible window is considered again.
	DefaultResendDelay = 24 * time.Hour
)

// Scheduler owns the wake-up queue: one pending evaluation per
// (user, category). At each due time it asks the evaluator whether a period
// is active, sends through the user's channels when one is, and re-queues at
// the next eligible instant. It holds no schedule state of its own; every
// evaluation re-reads the store.
type Scheduler struct {
	clk         clock.Clock
	rng         schedule.Rand
	store       *storage.Store
	channels    channel.Registry
	log         *zap.SugaredLogger
	resendDelay time.Duration

	mux sync.Mutex
	q   *sendQueue
}

func New(store *storage.Store, channels channel.Registry, l *zap.SugaredLogger, clk clock.Clock, rng schedule.Rand) *Scheduler {
	return &Scheduler{
		clk:         clk,
		rng:         rng,
		store:       store,
		channels:    channels,
		log:         l,
		resendDelay: DefaultResendDelay,
		q:           newSendQueue(),
	}
}

// SetResendDelay overrides the post-send quiet time.
func (s *Scheduler) SetResendDelay(d time.Duration) {
	s.resendDelay = d
}

// Init seeds the queue for every known user and category and starts the
// ticker loop.
func (s *Scheduler) Init(tick time.Duration) error {
	users, err := s.store.Users()
	if err != nil {
		return err
	}

	s.log.Infof("initializing schedules for %d users", len(users))

	for _, u := range users {
		categories, err := s.store.Categories(u)
		if err != nil {
			logger.ForUser(s.log, u, "failed to fetch categories; the user won't get messages", err)
			continue
		}
		for _, c := range categories {
			s.Set(u, c)
		}
	}

	go s.run(time.NewTicker(tick).C)
	return nil
}

func (s *Scheduler) run(ch <-chan time.Time) {
	for range ch {
		s.processDue()
	}
}

// processDue pops every entry whose time has come and evaluates it.
func (s *Scheduler) processDue() {
	now := s.clk.Now().UTC()
	for {
		s.mux.Lock()
		e := s.q.Peek()
		if e == nil || now.Before(e.at) {
			s.mux.Unlock()
			return
		}
		heap.Pop(s.q)
		s.mux.Unlock()

		s.fire(e.user, e.category)
	}
}

// Set computes the next wake-up for one user+category and queues it.
// It returns false when nothing in the mapping can ever fire.
func (s *Scheduler) Set(user, category string) bool {
	return s.setFrom(user, category, s.clk.Now())
}

// setFrom queues the first eligible instant at or after the given time.
func (s *Scheduler) setFrom(user, category string, from time.Time) bool {
	loc := s.userLocation(user)
	mapping, err := s.store.Periods(user, category)
	if err != nil {
		logger.ForUser(s.log, user, "failed to fetch periods", err)
		return false
	}

	next, ok := schedule.NextEligible(mapping, from.In(loc), s.log)
	if !ok {
		s.log.Debugw("no eligible period within horizon", "user", user, "category", category)
		s.mux.Lock()
		s.q.Delete(user, category)
		s.mux.Unlock()
		return false
	}

	s.mux.Lock()
	heap.Push(s.q, &entry{at: next.UTC(), user: user, category: category})
	s.mux.Unlock()
	return true
}

// Drop removes the pending wake-up for a user+category, e.g. after the
// category was deleted or the feature switched off.
func (s *Scheduler) Drop(user, category string) {
	s.mux.Lock()
	s.q.Delete(user, category)
	s.mux.Unlock()
}

// userLocation resolves the user's zone, falling back to UTC on bad config.
func (s *Scheduler) userLocation(user string) *time.Location {
	prefs, err := s.store.Preferences(user)
	if err != nil {
		logger.ForUser(s.log, user, "failed to fetch preferences; using UTC time zone", err)
		return time.UTC
	}
	loc, err := timezone.ResolveOrUTC(prefs.Timezone)
	if err != nil {
		logger.ForUser(s.log, user, "failed loading location; using UTC time zone", err)
	}
	return loc
}

// fire evaluates one due wake-up and re-queues the next one.
func (s *Scheduler) fire(user, category string) {
	loc := s.userLocation(user)
	now := s.clk.Now().In(loc)

	mapping, err := s.store.Periods(user, category)
	if err != nil {
		logger.ForUser(s.log, user, "failed to fetch periods", err)
		return
	}

	nowMin := now.Hour()*60 + now.Minute()
	name, ok := schedule.SelectForSend(mapping, nowMin, now.Weekday().String(), s.rng, s.log)
	if !ok {
		// the window may have closed between queueing and the tick
		s.setFrom(user, category, now)
		return
	}

	s.deliver(user, category, name)

	// stay quiet for a while, then queue the next eligible window
	s.setFrom(user, category, now.Add(s.resendDelay))
}

// deliver composes the category's text and pushes it through every channel
// the user enabled.
func (s *Scheduler) deliver(user, category, period string) {
	text, err := s.composeText(user, category)
	if err != nil {
		logger.ForUser(s.log, user, "failed to compose message", err)
		return
	}
	if text == "" {
		s.log.Debugw("nothing to send", "user", user, "category", category)
		return
	}

	prefs, err := s.store.Preferences(user)
	if err != nil {
		logger.ForUser(s.log, user, "failed to fetch preferences", err)
		return
	}

	delivery := uuid.NewString()
	s.log.Infow("sending", "delivery", delivery, "user", user, "category", category, "period", period)

	for _, name := range prefs.Channels {
		sender, ok := s.channels[name]
		if !ok {
			s.log.Warnw("unknown channel", "delivery", delivery, "channel", name)
			continue
		}
		if err := sender.Send(prefs, text); err != nil {
			s.log.Warnw("send failed", "delivery", delivery, "channel", name, "err", err)
			continue
		}
		s.log.Infow("sent", "delivery", delivery, "channel", name)
	}
}

// composeText picks what to say: a random check-in question, the pending
// task list, or a random message from the category's pool.
func (s *Scheduler) composeText(user, category string) (string, error) {
	switch category {
	case storage.CategoryCheckin:
		qs, err := s.store.CheckinQuestions(user)
		if err != nil || len(qs) == 0 {
			return "", err
		}
		return qs[s.rng.Intn(len(qs))], nil

	case storage.CategoryTasks:
		tasks, err := s.store.PendingTasks(user)
		if err != nil || len(tasks) == 0 {
			return "", err
		}
		return formatTaskList(tasks), nil

	default:
		msgs, err := s.store.Messages(user, category)
		if err != nil || len(msgs) == 0 {
			return "", err
		}
		return msgs[s.rng.Intn(len(msgs))], nil
	}
}
