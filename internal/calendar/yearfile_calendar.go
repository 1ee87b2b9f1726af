package calendar

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/username/datepicker/pkg/dateutil"
	"go.uber.org/zap"
)

const shortenedHours = 7

// YearFileCalendar reads production calendars in the xmlcalendar.ru JSON layout
// from local files, one file per year. The path pattern holds a {year} placeholder,
// e.g. "calendars/ru/{year}.json". Years are loaded lazily and kept in memory.
type YearFileCalendar struct {
	pathPattern string
	logger      *zap.Logger
	mu          sync.RWMutex
	years       map[int]*yearFile
	failed      map[int]error // years whose file could not be read or parsed
}

type yearFile struct {
	Year   int         `json:"year"`
	Months []yearMonth `json:"months"`
}

type yearMonth struct {
	Month int    `json:"month"`
	Days  string `json:"days"` // "1*,2,3+,4,8,9" where * = shortened, + = transferred day off
}

// NewYearFileCalendar creates a YearFileCalendar
func NewYearFileCalendar(pathPattern string, logger *zap.Logger) *YearFileCalendar {
	return &YearFileCalendar{
		pathPattern: pathPattern,
		logger:      logger,
		years:       make(map[int]*yearFile),
		failed:      make(map[int]error),
	}
}

// IsWorkday checks if the given date is a working day
func (yc *YearFileCalendar) IsWorkday(date time.Time) (bool, int, error) {
	dayInfo, err := yc.GetDayInfo(date)
	if err != nil {
		return false, 0, err
	}
	return dayInfo.IsWorkday, dayInfo.WorkingHours, nil
}

// GetDayInfo returns detailed info for a specific day
func (yc *YearFileCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	monthInfo, err := yc.GetMonthInfo(date.Year(), date.Month())
	if err != nil {
		return nil, err
	}
	if day, ok := monthInfo.findDay(date); ok {
		return day, nil
	}
	return nil, fmt.Errorf("day not found in year file: %s", date.Format(dateutil.ISOLayout))
}

// GetMonthInfo returns calendar info for the entire month
func (yc *YearFileCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	data, err := yc.year(year)
	if err != nil {
		return nil, err
	}

	for i := range data.Months {
		if data.Months[i].Month == int(month) {
			return yc.parseMonth(year, month, data.Months[i].Days), nil
		}
	}
	return nil, fmt.Errorf("month %d not found in year file for %d", month, year)
}

func (yc *YearFileCalendar) year(year int) (*yearFile, error) {
	yc.mu.RLock()
	data, ok := yc.years[year]
	failure := yc.failed[year]
	yc.mu.RUnlock()
	if ok {
		return data, nil
	}
	if failure != nil {
		return nil, failure
	}

	path := strings.ReplaceAll(yc.pathPattern, "{year}", strconv.Itoa(year))
	data, err := readYearFile(path)
	if err != nil {
		yc.mu.Lock()
		yc.failed[year] = err
		yc.mu.Unlock()

		yc.logger.Warn("Year calendar unavailable",
			zap.String("file", path),
			zap.Int("year", year),
			zap.Error(err))
		return nil, err
	}

	yc.mu.Lock()
	yc.years[year] = data
	yc.mu.Unlock()

	yc.logger.Info("Year calendar loaded",
		zap.String("file", path),
		zap.Int("year", year),
		zap.Int("months", len(data.Months)))

	return data, nil
}

func readYearFile(path string) (*yearFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read year file: %w", err)
	}

	data := &yearFile{}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("failed to parse year file %s: %w", path, err)
	}
	return data, nil
}

// parseMonth expands the compact day list into a full month
func (yc *YearFileCalendar) parseMonth(year int, month time.Month, days string) *MonthInfo {
	markers := make(map[int]rune) // day -> '*', '+' or 0
	for _, part := range strings.Split(days, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		marker := rune(0)
		if strings.HasSuffix(part, "*") || strings.HasSuffix(part, "+") {
			marker = rune(part[len(part)-1])
			part = part[:len(part)-1]
		}

		day, err := strconv.Atoi(part)
		if err != nil {
			yc.logger.Warn("Failed to parse day number",
				zap.String("part", part),
				zap.Error(err))
			continue
		}
		markers[day] = marker
	}

	monthInfo := &MonthInfo{Year: year, Month: month}
	for day := 1; day <= dateutil.DaysInMonth(year, month); day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		marker, listed := markers[day]

		info := DayInfo{Date: date}
		switch {
		case marker == '*':
			info.Type = DayTypeShortened
			info.WorkingHours = shortenedHours
			info.IsWorkday = true
		case listed && dateutil.IsWeekend(date):
			info.Type = DayTypeWeekend
		case listed:
			info.Type = DayTypeHoliday
		default:
			info.Type = DayTypeWorkday
			info.WorkingHours = defaultWorkingHours
			info.IsWorkday = true
		}
		monthInfo.tally(info)
	}
	return monthInfo
}
