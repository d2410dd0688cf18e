package availability

import "github.com/clinicport/backend/internal/model"

// Remaining computes, for each treatment, the configured slots not consumed by
// any of the given bookings. Bookings are matched to a treatment by name and
// slots by label equality; the result preserves catalog order and the
// configured slot order (stable filter, never re-sorted). Input treatments are
// not mutated.
//
// Callers pass the bookings for one target date. An empty or nil bookings list
// (the no-date query) leaves every treatment's full slot set intact.
func Remaining(treatments []model.Treatment, bookings []model.Booking) []model.Treatment {
	bookedByTreatment := make(map[string]map[string]struct{}, len(bookings))
	for _, b := range bookings {
		slots := bookedByTreatment[b.Treatment]
		if slots == nil {
			slots = map[string]struct{}{}
			bookedByTreatment[b.Treatment] = slots
		}
		slots[b.Slot] = struct{}{}
	}

	out := make([]model.Treatment, len(treatments))
	for i, t := range treatments {
		out[i] = t
		booked := bookedByTreatment[t.Name]
		if len(booked) == 0 {
			continue
		}
		remaining := make([]string, 0, len(t.Slots))
		for _, slot := range t.Slots {
			if _, taken := booked[slot]; !taken {
				remaining = append(remaining, slot)
			}
		}
		out[i].Slots = remaining
	}
	return out
}
