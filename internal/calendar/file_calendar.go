package calendar

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/username/datepicker/pkg/dateutil"
	"go.uber.org/zap"
)

// FileCalendar implements Calendar from a plain text file of explicit days.
//
// Format, one day per line: YYYY-MM-DD type working_hours [note]
//
//	# national holidays
//	2025-01-01 holiday 0 New Year
//	2025-02-22 shortened 7
//
// Days not listed in a loaded month are reported as regular workdays or weekends.
type FileCalendar struct {
	filePath string
	logger   *zap.Logger
	days     map[string]DayInfo // key: "YYYY-MM-DD"
	months   map[string]bool    // key: "YYYY-MM"
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, logger *zap.Logger) *FileCalendar {
	return &FileCalendar{
		filePath: filePath,
		logger:   logger,
		days:     make(map[string]DayInfo),
		months:   make(map[string]bool),
	}
}

// Load loads calendar data from file
func (fc *FileCalendar) Load() error {
	file, err := os.Open(fc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open calendar file: %w", err)
	}
	defer file.Close()

	if err := fc.LoadFrom(file); err != nil {
		return err
	}

	fc.logger.Info("Calendar file loaded",
		zap.String("file", fc.filePath),
		zap.Int("days", len(fc.days)),
		zap.Int("months", len(fc.months)))

	return nil
}

// LoadFrom reads calendar lines from r. Malformed lines are logged and skipped.
func (fc *FileCalendar) LoadFrom(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		day, err := parseCalendarLine(line)
		if err != nil {
			fc.logger.Warn("Skipping calendar line",
				zap.Int("line", lineNo),
				zap.String("text", line),
				zap.Error(err))
			continue
		}

		fc.days[day.Date.Format(dateutil.ISOLayout)] = day
		fc.months[monthKey(day.Date.Year(), day.Date.Month())] = true
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading calendar file: %w", err)
	}
	return nil
}

func parseCalendarLine(line string) (DayInfo, error) {
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return DayInfo{}, fmt.Errorf("want 'date type hours [note]', got %d fields", len(parts))
	}

	date, err := time.Parse(dateutil.ISOLayout, parts[0])
	if err != nil {
		return DayInfo{}, fmt.Errorf("bad date: %w", err)
	}

	hours, err := strconv.Atoi(parts[2])
	if err != nil {
		return DayInfo{}, fmt.Errorf("bad working hours: %w", err)
	}

	day := DayInfo{
		Date:         date,
		WorkingHours: hours,
		Note:         strings.Join(parts[3:], " "),
	}

	switch parts[1] {
	case "workday":
		day.Type = DayTypeWorkday
		day.IsWorkday = true
	case "shortened":
		day.Type = DayTypeShortened
		day.IsWorkday = true
	case "weekend":
		day.Type = DayTypeWeekend
	case "holiday":
		day.Type = DayTypeHoliday
	default:
		return DayInfo{}, fmt.Errorf("unknown day type %q", parts[1])
	}

	return day, nil
}

// IsWorkday checks if the given date is a working day
func (fc *FileCalendar) IsWorkday(date time.Time) (bool, int, error) {
	dayInfo, err := fc.GetDayInfo(date)
	if err != nil {
		return false, 0, err
	}

	return dayInfo.IsWorkday, dayInfo.WorkingHours, nil
}

// GetMonthInfo returns calendar info for the entire month
func (fc *FileCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	key := monthKey(year, month)
	if !fc.months[key] {
		return nil, fmt.Errorf("month not found in calendar: %s", key)
	}

	monthInfo := &MonthInfo{Year: year, Month: month}
	for day := 1; day <= dateutil.DaysInMonth(year, month); day++ {
		info, _ := fc.GetDayInfo(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
		monthInfo.tally(*info)
	}
	return monthInfo, nil
}

// GetDayInfo returns detailed info for a specific day
func (fc *FileCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	if day, ok := fc.days[date.Format(dateutil.ISOLayout)]; ok {
		return &day, nil
	}

	if !fc.months[monthKey(date.Year(), date.Month())] {
		return nil, fmt.Errorf("day not found in calendar: %s", date.Format(dateutil.ISOLayout))
	}

	// Listed month, unlisted day: regular week rules apply
	day := NewWeekendCalendar().dayInfo(date)
	return &day, nil
}
