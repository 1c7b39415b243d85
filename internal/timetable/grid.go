package timetable

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/filc/internal/model"
)

const (
	// GapSubject names the synthesized lesson of a free period.
	GapSubject = "free period"
	gapTopic   = "relax"

	roomWord       = "terem"
	imminentWindow = 120 * time.Minute
	clockLayout    = "15:04"

	// maxDayGap is the widest date jump that still opens a new week column.
	maxDayGap = 2

	// cellJoin separates lessons sharing one week cell.
	cellJoin = " / "
)

// DayHeader labels the columns of a day grid.
var DayHeader = []string{".", "time", "subject", "room", "teacher", "extra", "extra-extra"}

// Options carries the per-render settings of the grid builders.
type Options struct {
	Now      time.Time
	SlotBase model.SlotBase
}

// BuildDayGrid lays out one day's lessons, one row per slot. Free slots
// between the first slot of the day and the last lesson become gap rows
// timed after the same slot elsewhere in week.
func BuildDayGrid(lessons, week []model.Lesson, tests []model.AnnouncedTest, opts Options) model.Grid {
	grid := model.Grid{Header: append([]string(nil), DayHeader[:5]...)}
	lessons = sortLessons(lessons)
	if len(lessons) == 0 {
		return grid
	}
	if lessons[0].Placeholder {
		grid.Title = lessons[0].Subject
		lessons = lessons[1:]
	} else {
		grid.Title = DayTitle(lessons[0].Day())
	}
	expected := startSlot(lessons, opts.SlotBase)
	lessons = dropBelow(lessons, expected)
	if len(lessons) == 0 {
		return grid
	}

	var next *model.Lesson
	if lsn, ok := NextLesson(week, opts.Now); ok {
		next = &lsn
	}

	for _, lsn := range lessons {
		for slot := expected; slot < lsn.Slot; slot++ {
			grid.Rows = append(grid.Rows, gapRow(slot, week, opts.Now))
		}
		grid.Rows = append(grid.Rows, lessonRow(lsn, next, findTest(lsn, tests), opts.Now))
		if lsn.Slot >= expected {
			expected = lsn.Slot + 1
		}
	}

	width := len(grid.Header)
	for _, row := range grid.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	grid.Header = append([]string(nil), DayHeader[:width]...)
	for i, row := range grid.Rows {
		for len(row) < width {
			row = append(row, model.Cell{})
		}
		grid.Rows[i] = row
	}
	return grid
}

// BuildWeekGrid lays out a week with one column per school day and one row
// per slot. Placeholder lessons are dropped. A lesson more than two days
// after the previous column's date is discarded instead of opening a column,
// which absorbs fetch windows that reach into the next week's Monday.
func BuildWeekGrid(lessons []model.Lesson, opts Options) model.Grid {
	grid := model.Grid{Header: []string{"."}}
	kept := make([]model.Lesson, 0, len(lessons))
	for _, lsn := range lessons {
		if !lsn.Placeholder {
			kept = append(kept, lsn)
		}
	}
	start := startSlot(kept, opts.SlotBase)
	kept = dropBelow(kept, start)
	if len(kept) == 0 {
		return grid
	}
	kept = sortLessons(kept)

	type placement struct {
		lesson model.Lesson
		col    int
	}
	days := []time.Time{kept[0].Day()}
	placed := make([]placement, 0, len(kept))
	for _, lsn := range kept {
		day := lsn.Day()
		prev := days[len(days)-1]
		if !model.SameDay(day, prev) {
			if model.DaysBetween(prev, day) > maxDayGap {
				continue
			}
			days = append(days, day)
		}
		placed = append(placed, placement{lesson: lsn, col: len(days)})
	}

	last := start
	for _, lsn := range kept {
		if lsn.Slot > last {
			last = lsn.Slot
		}
	}

	for _, day := range days {
		grid.Header = append(grid.Header, day.Weekday().String())
	}
	grid.Rows = make([][]model.Cell, last-start+1)
	for i := range grid.Rows {
		row := make([]model.Cell, len(days)+1)
		row[0] = model.Cell{Text: strconv.Itoa(start + i)}
		grid.Rows[i] = row
	}

	var next *model.Lesson
	if lsn, ok := NextLesson(kept, opts.Now); ok {
		next = &lsn
	}
	for _, p := range placed {
		text := p.lesson.Subject
		if room := NormalizeRoom(p.lesson.Room); room != "" {
			text += " " + room
		}
		cell := model.Cell{Text: text, Status: Classify(p.lesson, next, opts.Now)}
		row := grid.Rows[p.lesson.Slot-start]
		if prev := row[p.col]; prev.Text != "" {
			cell = model.Cell{
				Text:   prev.Text + cellJoin + cell.Text,
				Status: outranking(prev.Status, cell.Status),
			}
		}
		row[p.col] = cell
	}
	return grid
}

// outranking returns the status that wins under Classify's precedence.
func outranking(a, b model.Status) model.Status {
	if b == model.StatusNormal {
		return a
	}
	if a == model.StatusNormal || b < a {
		return b
	}
	return a
}

// NormalizeRoom strips the word for room and surrounding whitespace.
func NormalizeRoom(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, roomWord, ""))
}

// DayTitle formats the heading printed above a day grid.
func DayTitle(day time.Time) string {
	return fmt.Sprintf("%s, %s", day.Weekday(), day.Format("2006-01-02"))
}

// startSlot is the slot of the first row. SlotBaseOne pins it to 1;
// otherwise the base (0 or 1) is lowered when the data has an earlier slot.
func startSlot(lessons []model.Lesson, base model.SlotBase) int {
	start := 1
	switch base {
	case model.SlotBaseOne:
		return start
	case model.SlotBaseZero:
		start = 0
	}
	for _, lsn := range lessons {
		if lsn.Slot < start {
			start = lsn.Slot
		}
	}
	return start
}

// dropBelow removes lessons numbered before the first row.
func dropBelow(lessons []model.Lesson, start int) []model.Lesson {
	out := make([]model.Lesson, 0, len(lessons))
	for _, lsn := range lessons {
		if lsn.Slot >= start {
			out = append(out, lsn)
		}
	}
	return out
}

func lessonRow(lsn model.Lesson, next *model.Lesson, test *model.AnnouncedTest, now time.Time) []model.Cell {
	name := lsn.Subject
	if lsn.Topic != "" {
		name += ": " + lsn.Topic
	}
	nameCell := model.Cell{Text: name}
	if lsn.Cancelled {
		prefix := "was cancelled: "
		if Forecoming(lsn, now) {
			prefix = "cancelled: "
		}
		nameCell = model.Cell{Text: prefix + name, Status: model.StatusCancelled}
	}

	teacherCell := model.Cell{Text: lsn.Teacher}
	if lsn.Substitute != "" {
		teacherCell = model.Cell{Text: "substitute: " + lsn.Substitute, Status: model.StatusSubstituted}
	}

	row := []model.Cell{
		{Text: strconv.Itoa(lsn.Slot)},
		timeCell(lsn, next, now),
		nameCell,
		{Text: NormalizeRoom(lsn.Room)},
		teacherCell,
	}
	if lsn.Absent {
		row = append(row, model.Cell{Text: "absent", Status: model.StatusAbsent})
	}
	if test != nil {
		desc := test.Mode
		if test.Topic != "" {
			desc += ": " + test.Topic
		}
		row = append(row, model.Cell{Text: desc, Status: model.StatusTest})
	}
	return row
}

func timeCell(lsn model.Lesson, next *model.Lesson, now time.Time) model.Cell {
	if lsn.Start.IsZero() && lsn.End.IsZero() {
		return model.Cell{}
	}
	from, to := clock(lsn.Start), clock(lsn.End)
	status := model.StatusNormal
	if mins := MinutesUntil(lsn.Start, now); next != nil && lsn.Equal(*next) && mins < int(imminentWindow.Minutes()) {
		from = fmt.Sprintf("%d min", mins)
		status = model.StatusUpcoming
	}
	if Happening(lsn, now) {
		to = fmt.Sprintf("%d min", MinutesUntil(lsn.End, now))
		status = model.StatusHappening
	}
	return model.Cell{Text: from + " - " + to, Status: status}
}

func clock(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(clockLayout)
}

func gapRow(slot int, week []model.Lesson, now time.Time) []model.Cell {
	gap := model.Lesson{Subject: GapSubject, Topic: gapTopic, Slot: slot}
	for _, lsn := range week {
		if lsn.Slot == slot && !lsn.Start.IsZero() {
			gap.Start, gap.End = lsn.Start, lsn.End
			break
		}
	}
	row := lessonRow(gap, nil, nil, now)
	for i := range row {
		row[i].Status = model.StatusGap
	}
	return row
}

func findTest(lsn model.Lesson, tests []model.AnnouncedTest) *model.AnnouncedTest {
	for i := range tests {
		if tests[i].Slot == lsn.Slot && model.SameDay(tests[i].Date, lsn.Day()) {
			return &tests[i]
		}
	}
	return nil
}
