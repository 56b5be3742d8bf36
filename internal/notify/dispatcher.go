package notify

import "log"

// Notification kinds used across the booking and payment flows.
const (
	TypeBookingCreated   = "booking_created"
	TypeBookingStatus    = "booking_status_changed"
	TypePaymentConfirmed = "payment_confirmed"
	TypePaymentRefunded  = "payment_refunded"
	TypeOrderPlaced      = "order_placed"
	TypeSalonReviewed    = "salon_status_changed"
)

type Event struct {
	Type       string
	ReceiverID uint
	Message    string
	Metadata   any
}

// Sink receives dispatched events. Writer persists them; tests swap in
// something lighter.
type Sink interface {
	Write(ev Event) error
}

// Dispatcher is fire-and-forget: delivery failures never fail the request
// that produced the event.
type Dispatcher struct {
	sink  Sink
	queue chan Event
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.sink.Write(ev); err != nil {
			log.Println("notify error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		log.Println("notify queue full, dropping event")
	}
}
