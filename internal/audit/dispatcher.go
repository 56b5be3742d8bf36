package audit

import "log"

type Event struct {
	SalonID  uint
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Recorder persists audit entries. Logger is the gorm-backed one.
type Recorder interface {
	Log(salonID uint, userID *uint, action, entity string, entityID *uint, metadata any) error
}

type Dispatcher struct {
	recorder Recorder
	queue    chan Event
}

func NewDispatcher(recorder Recorder) *Dispatcher {
	d := &Dispatcher{
		recorder: recorder,
		queue:    make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.recorder.Log(
			ev.SalonID,
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Println("audit error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// full queue drops audit rather than failing the API
		log.Println("audit queue full, dropping event")
	}
}
