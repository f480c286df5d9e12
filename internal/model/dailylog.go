package model

// FoodEntry is one logged food item within a day.
type FoodEntry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// DailyLog holds everything eaten and trained on a single calendar day.
// Date is a "2006-01-02" day key; the log is replaced wholesale when the
// stored date no longer matches today.
type DailyLog struct {
	Date            string      `json:"date"`
	Eaten           []FoodEntry `json:"eaten"`
	WorkoutDuration int         `json:"workoutDuration"`
}

func NewDailyLog(dayKey string) *DailyLog {
	return &DailyLog{
		Date:  dayKey,
		Eaten: []FoodEntry{},
	}
}

// Clone returns a copy safe to hand outside the owning service.
func (l *DailyLog) Clone() *DailyLog {
	out := *l
	out.Eaten = make([]FoodEntry, len(l.Eaten))
	copy(out.Eaten, l.Eaten)
	return &out
}

func (l *DailyLog) TotalCalories() int {
	total := 0
	for _, e := range l.Eaten {
		total += e.Calories
	}
	return total
}
