package shift

// DayGroup is one date bucket of the available-shifts listing, ordered by
// date ascending with shifts ordered by hour within the day.
type DayGroup struct {
	Date   string              `json:"date"`
	Shifts []*ShiftWithCompany `json:"shifts"`
}

// GroupByDate buckets an already date-ordered slice into per-day groups,
// preserving encounter order.
func GroupByDate(shifts []*ShiftWithCompany) []DayGroup {
	groups := make([]DayGroup, 0)
	index := make(map[string]int)

	for _, s := range shifts {
		i, ok := index[s.Date]
		if !ok {
			i = len(groups)
			index[s.Date] = i
			groups = append(groups, DayGroup{Date: s.Date, Shifts: make([]*ShiftWithCompany, 0, 4)})
		}
		groups[i].Shifts = append(groups[i].Shifts, s)
	}
	return groups
}

type ApplyResponse struct {
	Message string `json:"message"`
	Shift   *Shift `json:"shift"`
}

type WithdrawResponse struct {
	Message string `json:"message"`
	Shift   *Shift `json:"shift"`
}
