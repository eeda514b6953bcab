package core

import "sort"

// EffectiveStatus derives the display status of a bill at query time.
// A paid bill stays paid; an unpaid bill whose due date has passed is
// overdue; everything else is pending. The stored status is never
// mutated by this derivation.
func EffectiveStatus(b Bill, today Date) BillStatus {
	if b.Status == BillPaid {
		return BillPaid
	}
	if b.DueDate.Before(today) {
		return BillOverdue
	}
	return BillPending
}

// UpcomingBills returns the bills that still need payment (effective
// status other than paid), sorted ascending by due date. Ties keep id
// order so the result is deterministic.
func UpcomingBills(bills []Bill, today Date) []Bill {
	upcoming := make([]Bill, 0, len(bills))
	for _, b := range bills {
		if EffectiveStatus(b, today) == BillPaid {
			continue
		}
		upcoming = append(upcoming, b)
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		if !upcoming[i].DueDate.Equal(upcoming[j].DueDate) {
			return upcoming[i].DueDate.Before(upcoming[j].DueDate)
		}
		return upcoming[i].ID < upcoming[j].ID
	})
	return upcoming
}

// PayBill marks the bill paid as of today. Paying an already-paid bill
// simply re-sets the paid date; nothing else changes.
func PayBill(b Bill, today Date) Bill {
	b.Status = BillPaid
	paid := today
	b.PaidDate = &paid
	return b
}

// UnpayBill reverts a bill to pending and clears its paid date.
func UnpayBill(b Bill) Bill {
	b.Status = BillPending
	b.PaidDate = nil
	return b
}

// NextDueDate advances a due date by one recurrence interval.
// Month-based frequencies normalize the way time.AddDate does
// (Jan 31 + 1 month lands in early March).
func NextDueDate(due Date, frequency Frequency) Date {
	switch frequency {
	case FrequencyWeekly:
		return due.AddDate(0, 0, 7)
	case FrequencyQuarterly:
		return due.AddDate(0, 3, 0)
	case FrequencyYearly:
		return due.AddDate(1, 0, 0)
	default:
		return due.AddDate(0, 1, 0)
	}
}
