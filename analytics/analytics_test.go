package analytics

import (
	"testing"
	"time"

	"github.com/bhavishkl/NoQue/history"
	"github.com/stretchr/testify/assert"
)

func servedEntry(join time.Time, waitMinutes int, serviceMinutes int) history.Entry {
	status := history.StatusServed
	exit := join.Add(time.Duration(waitMinutes) * time.Minute)
	return history.Entry{
		JoinTime:    join,
		ExitTime:    &exit,
		Status:      &status,
		WaitTime:    &waitMinutes,
		ServiceTime: &serviceMinutes,
	}
}

func leftEntry(join time.Time) history.Entry {
	status := history.StatusLeft
	exit := join.Add(time.Minute)
	return history.Entry{
		JoinTime: join,
		ExitTime: &exit,
		Status:   &status,
	}
}

func at(day int, hour int) time.Time {
	// March 2025: the 2nd is a Sunday.
	return time.Date(2025, time.March, day, hour, 0, 0, 0, time.UTC)
}

func TestAverageWaitTime(t *testing.T) {
	t.Run("mean over served entries only", func(t *testing.T) {
		entries := []history.Entry{
			servedEntry(at(3, 9), 10, 5),
			servedEntry(at(3, 10), 20, 5),
			leftEntry(at(3, 11)),
		}
		report := Compute(entries, nil, 5)
		assert.Equal(t, 15, report.AverageWaitTime)
	})

	t.Run("zero with no served entries", func(t *testing.T) {
		report := Compute([]history.Entry{leftEntry(at(3, 9))}, nil, 5)
		assert.Equal(t, 0, report.AverageWaitTime)
	})
}

func TestPeakHours(t *testing.T) {
	t.Run("ties included, ascending", func(t *testing.T) {
		entries := []history.Entry{
			leftEntry(at(3, 14)),
			leftEntry(at(3, 14)),
			leftEntry(at(3, 9)),
			leftEntry(at(3, 9)),
			leftEntry(at(3, 11)),
		}
		report := Compute(entries, nil, 5)
		assert.Equal(t, []int{9, 14}, report.PeakHours)
	})

	t.Run("empty window", func(t *testing.T) {
		report := Compute(nil, nil, 5)
		assert.Equal(t, []int{}, report.PeakHours)
	})
}

func TestBusiestDay(t *testing.T) {
	t.Run("weekday with most joins", func(t *testing.T) {
		entries := []history.Entry{
			leftEntry(at(3, 9)),  // Monday
			leftEntry(at(3, 10)), // Monday
			leftEntry(at(4, 9)),  // Tuesday
		}
		report := Compute(entries, nil, 5)
		assert.Equal(t, "Monday", report.BusiestDay)
	})

	t.Run("ties resolve in Sunday..Saturday order", func(t *testing.T) {
		entries := []history.Entry{
			leftEntry(at(4, 9)), // Tuesday
			leftEntry(at(2, 9)), // Sunday
			leftEntry(at(7, 9)), // Friday
		}
		report := Compute(entries, nil, 5)
		assert.Equal(t, "Sunday", report.BusiestDay)
	})

	t.Run("empty window", func(t *testing.T) {
		report := Compute(nil, nil, 5)
		assert.Equal(t, "", report.BusiestDay)
	})
}

func TestWaitTimeByHour(t *testing.T) {
	entries := []history.Entry{
		servedEntry(at(3, 9), 10, 5),
		servedEntry(at(3, 9), 20, 5),
		servedEntry(at(3, 15), 8, 5),
		leftEntry(at(3, 12)), // not served, excluded
	}
	report := Compute(entries, nil, 5)
	assert.Equal(t, []HourlyWait{
		{Hour: 9, AverageWaitTime: 15},
		{Hour: 15, AverageWaitTime: 8},
	}, report.WaitTimeByHour)
}

func TestCustomerFlowByDay(t *testing.T) {
	entries := []history.Entry{
		leftEntry(at(3, 9)),
		leftEntry(at(3, 17)),
		leftEntry(at(5, 9)),
	}
	report := Compute(entries, nil, 5)
	assert.Equal(t, []DailyFlow{
		{Date: "2025-03-03", CustomerCount: 2},
		{Date: "2025-03-05", CustomerCount: 1},
	}, report.CustomerFlowByDay)
}

func TestSatisfactionRate(t *testing.T) {
	t.Run("percentage of maximum rating", func(t *testing.T) {
		report := Compute(nil, []int{5, 4, 3}, 5)
		assert.Equal(t, 80, report.CustomerSatisfactionRate)
	})

	t.Run("zero with no reviews", func(t *testing.T) {
		report := Compute(nil, nil, 5)
		assert.Equal(t, 0, report.CustomerSatisfactionRate)
	})
}

func TestEfficiencyRate(t *testing.T) {
	t.Run("service share of total time", func(t *testing.T) {
		entries := []history.Entry{
			servedEntry(at(3, 9), 10, 10),
			servedEntry(at(3, 10), 20, 10),
		}
		// 20 service vs 30 wait → 40%
		report := Compute(entries, nil, 10)
		assert.Equal(t, 40, report.QueueEfficiencyRate)
	})

	t.Run("defaults to 100 with no complete served entries", func(t *testing.T) {
		report := Compute([]history.Entry{leftEntry(at(3, 9))}, nil, 10)
		assert.Equal(t, 100, report.QueueEfficiencyRate)
	})

	t.Run("zero wait is fully efficient", func(t *testing.T) {
		report := Compute([]history.Entry{servedEntry(at(3, 9), 0, 0)}, nil, 10)
		assert.Equal(t, 100, report.QueueEfficiencyRate)
	})
}

func TestTotalCustomers(t *testing.T) {
	entries := []history.Entry{
		servedEntry(at(3, 9), 10, 5),
		leftEntry(at(3, 10)),
	}
	report := Compute(entries, nil, 5)
	assert.Equal(t, 2, report.TotalCustomers)
	assert.Equal(t, 5, report.AverageServiceTime)
}
