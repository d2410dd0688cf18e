package availability

import (
	"reflect"
	"testing"

	"github.com/clinicport/backend/internal/model"
)

func catalog() []model.Treatment {
	return []model.Treatment{
		{Name: "Teeth Cleaning", Slots: []string{"9am", "10am", "11am"}, Price: 50},
		{Name: "Cavity Protection", Slots: []string{"9am", "10am"}, Price: 80},
	}
}

func TestRemaining_SubtractsBookedSlotsPerTreatment(t *testing.T) {
	bookings := []model.Booking{
		{Treatment: "Teeth Cleaning", Slot: "9am", AppointmentDate: "2024-01-05"},
		{Treatment: "Teeth Cleaning", Slot: "11am", AppointmentDate: "2024-01-05"},
	}

	got := Remaining(catalog(), bookings)
	if len(got) != 2 {
		t.Fatalf("expected 2 treatments, got %d", len(got))
	}
	if !reflect.DeepEqual(got[0].Slots, []string{"10am"}) {
		t.Fatalf("Teeth Cleaning slots: got %v, want [10am]", got[0].Slots)
	}
	// Bookings for one treatment must not touch another treatment's slots.
	if !reflect.DeepEqual(got[1].Slots, []string{"9am", "10am"}) {
		t.Fatalf("Cavity Protection slots: got %v, want [9am 10am]", got[1].Slots)
	}
}

func TestRemaining_NoBookingsReturnsFullCatalog(t *testing.T) {
	got := Remaining(catalog(), nil)
	want := catalog()
	for i := range want {
		if !reflect.DeepEqual(got[i].Slots, want[i].Slots) {
			t.Fatalf("treatment %q: got %v, want %v", want[i].Name, got[i].Slots, want[i].Slots)
		}
	}
}

func TestRemaining_PreservesCatalogAndSlotOrder(t *testing.T) {
	treatments := []model.Treatment{
		{Name: "B", Slots: []string{"3pm", "1pm", "2pm"}},
		{Name: "A", Slots: []string{"9am", "8am"}},
	}
	got := Remaining(treatments, []model.Booking{{Treatment: "B", Slot: "1pm"}})

	if got[0].Name != "B" || got[1].Name != "A" {
		t.Fatalf("catalog order changed: %v, %v", got[0].Name, got[1].Name)
	}
	if !reflect.DeepEqual(got[0].Slots, []string{"3pm", "2pm"}) {
		t.Fatalf("slot order not preserved: got %v", got[0].Slots)
	}
}

func TestRemaining_FullyBookedTreatmentHasNoSlots(t *testing.T) {
	bookings := []model.Booking{
		{Treatment: "Cavity Protection", Slot: "9am"},
		{Treatment: "Cavity Protection", Slot: "10am"},
	}
	got := Remaining(catalog(), bookings)
	if len(got[1].Slots) != 0 {
		t.Fatalf("expected no slots, got %v", got[1].Slots)
	}
}

func TestRemaining_IsIdempotentAndDoesNotMutateInput(t *testing.T) {
	treatments := catalog()
	bookings := []model.Booking{{Treatment: "Teeth Cleaning", Slot: "9am"}}

	first := Remaining(treatments, bookings)
	second := Remaining(treatments, bookings)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("two computations over the same inputs differ")
	}
	if !reflect.DeepEqual(treatments[0].Slots, []string{"9am", "10am", "11am"}) {
		t.Fatalf("input catalog mutated: %v", treatments[0].Slots)
	}
}

func TestRemaining_UnknownBookedSlotLabelIsIgnored(t *testing.T) {
	got := Remaining(catalog(), []model.Booking{{Treatment: "Teeth Cleaning", Slot: "99pm"}})
	if !reflect.DeepEqual(got[0].Slots, []string{"9am", "10am", "11am"}) {
		t.Fatalf("unexpected slots: %v", got[0].Slots)
	}
}
