package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/bhavishkl/NoQue/history"
	"github.com/samber/lo"
	"golang.org/x/exp/maps"
)

// WindowDays is the trailing window analytics are computed over.
const WindowDays = 30

type HourlyWait struct {
	Hour            int `json:"hour"`
	AverageWaitTime int `json:"averageWaitTime"`
}

type DailyFlow struct {
	Date          string `json:"date"`
	CustomerCount int    `json:"customerCount"`
}

type Report struct {
	TotalCustomers           int          `json:"totalCustomers"`
	AverageWaitTime          int          `json:"averageWaitTime"`
	PeakHours                []int        `json:"peakHours"`
	BusiestDay               string       `json:"busiestDay"`
	WaitTimeByHour           []HourlyWait `json:"waitTimeByHour"`
	CustomerFlowByDay        []DailyFlow  `json:"customerFlowByDay"`
	CustomerSatisfactionRate int          `json:"customerSatisfactionRate"`
	AverageServiceTime       int          `json:"averageServiceTime"`
	QueueEfficiencyRate      int          `json:"queueEfficiencyRate"`
	GeneratedAt              time.Time    `json:"generatedAt"`
}

// Compute builds the report from history entries (join_time within the
// window), review ratings, and the queue's configured service time. All
// bucketing is done on UTC timestamps.
func Compute(entries []history.Entry, ratings []int, avgServiceTime int) Report {
	return Report{
		TotalCustomers:           len(entries),
		AverageWaitTime:          averageWaitTime(entries),
		PeakHours:                peakHours(entries),
		BusiestDay:               busiestDay(entries),
		WaitTimeByHour:           waitTimeByHour(entries),
		CustomerFlowByDay:        customerFlowByDay(entries),
		CustomerSatisfactionRate: satisfactionRate(ratings),
		AverageServiceTime:       avgServiceTime,
		QueueEfficiencyRate:      efficiencyRate(entries),
		GeneratedAt:              time.Now().UTC(),
	}
}

func served(entries []history.Entry) []history.Entry {
	return lo.Filter(entries, func(e history.Entry, _ int) bool {
		return e.Status != nil && *e.Status == history.StatusServed && e.WaitTime != nil
	})
}

func averageWaitTime(entries []history.Entry) int {
	servedEntries := served(entries)
	if len(servedEntries) == 0 {
		return 0
	}
	total := lo.SumBy(servedEntries, func(e history.Entry) int {
		return *e.WaitTime
	})
	return int(math.Round(float64(total) / float64(len(servedEntries))))
}

// peakHours returns every hour-of-day sharing the maximum join count,
// ascending.
func peakHours(entries []history.Entry) []int {
	counts := map[int]int{}
	for _, e := range entries {
		counts[e.JoinTime.UTC().Hour()]++
	}
	if len(counts) == 0 {
		return []int{}
	}

	max := lo.Max(maps.Values(counts))
	hours := []int{}
	for hour, count := range counts {
		if count == max {
			hours = append(hours, hour)
		}
	}
	sort.Ints(hours)
	return hours
}

// busiestDay picks the weekday with the most joins. Ties resolve in
// weekday order Sunday..Saturday: the first weekday holding the maximum
// wins.
func busiestDay(entries []history.Entry) string {
	if len(entries) == 0 {
		return ""
	}

	counts := [7]int{}
	for _, e := range entries {
		counts[e.JoinTime.UTC().Weekday()]++
	}

	best := time.Sunday
	for day := time.Monday; day <= time.Saturday; day++ {
		if counts[day] > counts[best] {
			best = day
		}
	}
	return best.String()
}

func waitTimeByHour(entries []history.Entry) []HourlyWait {
	buckets := map[int][]int{}
	for _, e := range served(entries) {
		hour := e.JoinTime.UTC().Hour()
		buckets[hour] = append(buckets[hour], *e.WaitTime)
	}

	hours := maps.Keys(buckets)
	sort.Ints(hours)

	result := make([]HourlyWait, 0, len(hours))
	for _, hour := range hours {
		total := lo.Sum(buckets[hour])
		result = append(result, HourlyWait{
			Hour:            hour,
			AverageWaitTime: int(math.Round(float64(total) / float64(len(buckets[hour])))),
		})
	}
	return result
}

func customerFlowByDay(entries []history.Entry) []DailyFlow {
	counts := map[string]int{}
	for _, e := range entries {
		counts[e.JoinTime.UTC().Format("2006-01-02")]++
	}

	dates := maps.Keys(counts)
	sort.Strings(dates)

	result := make([]DailyFlow, 0, len(dates))
	for _, date := range dates {
		result = append(result, DailyFlow{Date: date, CustomerCount: counts[date]})
	}
	return result
}

func satisfactionRate(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	total := lo.Sum(ratings)
	return int(math.Round(float64(total) / float64(len(ratings)*5) * 100))
}

// efficiencyRate is service time's share of total time spent, over served
// entries carrying both wait and service times. No such entries means
// nobody waited, reported as 100 ("fully efficient" by convention).
func efficiencyRate(entries []history.Entry) int {
	complete := lo.Filter(entries, func(e history.Entry, _ int) bool {
		return e.Status != nil && *e.Status == history.StatusServed &&
			e.WaitTime != nil && e.ServiceTime != nil
	})
	if len(complete) == 0 {
		return 100
	}

	totalWait := lo.SumBy(complete, func(e history.Entry) int { return *e.WaitTime })
	totalService := lo.SumBy(complete, func(e history.Entry) int { return *e.ServiceTime })
	if totalWait+totalService == 0 {
		return 100
	}
	return int(math.Round(float64(totalService) / float64(totalWait+totalService) * 100))
}
