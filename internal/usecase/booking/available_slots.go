package booking

import (
	"context"

	domain "github.com/nrbnayon/BarBar-sub000/internal/domain/booking"
	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
)

type GetAvailableSlots struct {
	repo domain.Repository
}

func NewGetAvailableSlots(repo domain.Repository) *GetAvailableSlots {
	return &GetAvailableSlots{repo: repo}
}

func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.Slot, error) {

	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil || !service.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	hours, err := uc.repo.ListBusinessHours(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	win, open := domain.ResolveHours(hours, in.Date)
	if !open {
		return []domain.Slot{}, nil
	}

	occupancy, err := uc.repo.MapSlotOccupancy(
		ctx,
		in.SalonID,
		in.ServiceID,
		in.Date,
	)
	if err != nil {
		return nil, err
	}

	starts := domain.EnumerateSlots(win, service.DurationMin)

	slots := make([]domain.Slot, 0, len(starts))
	for _, startMin := range starts {
		start := domain.FormatClock(startMin)

		remaining := service.MaxPerSlot - occupancy[start]
		if remaining <= 0 {
			continue
		}

		slots = append(slots, domain.Slot{
			Start:     start,
			End:       domain.FormatClock(startMin + service.DurationMin),
			Remaining: remaining,
		})
	}

	return slots, nil
}
