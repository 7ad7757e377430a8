// Package calendar renders a week view of lessons and open availability as a
// PNG, for dashboard embedding and quick sharing.
package calendar

import (
	"bytes"
	"image/color"
	"image/png"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/avoshchina/tutorhub/internal/model"
)

const (
	imageWidth      = 1400
	imageHeight     = 900
	headerHeight    = 90
	leftLabelsWidth = 80
	dayPaddingX     = 8
	minEntryHeight  = 10.0
	entryRadius     = 6.0
	daysInWeek      = 7
	hourPadding     = 1
	defaultMinHour  = 8
	defaultMaxHour  = 20
)

var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{222, 222, 222, 255}

	openSlotColor = color.RGBA{133, 193, 85, 220}
	lessonColor   = color.RGBA{255, 182, 193, 255}
	entryText     = color.RGBA{20, 24, 28, 230}
)

// entry is one rectangle on the grid: a booked lesson or an open slot.
type entry struct {
	start  time.Time
	end    time.Time
	label  string
	booked bool
}

type weekBounds struct {
	start time.Time
	end   time.Time
}

type hourRange struct {
	start int
	end   int
	total int
}

// RenderWeek draws the lessons and open slots that fall into the week
// containing weekStart (Monday through Sunday, UTC) and returns the PNG
// bytes.
func RenderWeek(weekStart time.Time, lessons []*model.Lesson, openSlots []*model.AvailabilitySlot) ([]byte, error) {
	week := normalizeToWeekBounds(weekStart)
	entries := collectEntries(week, lessons, openSlots)
	byDay := groupByDay(entries)
	hours := calculateHourRange(entries)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := (imageWidth - leftLabelsWidth) / daysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, week)
	drawHourLabels(dc, hours, cellHeight)

	date := week.start
	for dayIndex := 0; dayIndex < daysInWeek; dayIndex++ {
		x := float64(leftLabelsWidth + dayIndex*dayWidth)
		y := float64(headerHeight)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, dayIndex)
		drawDayHeader(dc, date, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)
		for _, e := range byDay[date.Format("2006-01-02")] {
			drawEntry(dc, e, x, y, dayWidth, hours, cellHeight)
		}

		date = date.AddDate(0, 0, 1)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func normalizeToWeekBounds(date time.Time) weekBounds {
	utc := date.UTC()
	normalized := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)

	daysSinceMonday := int(normalized.Weekday()) - 1
	if normalized.Weekday() == time.Sunday {
		daysSinceMonday = 6
	}

	start := normalized.AddDate(0, 0, -daysSinceMonday)
	return weekBounds{start: start, end: start.AddDate(0, 0, 6)}
}

func collectEntries(week weekBounds, lessons []*model.Lesson, openSlots []*model.AvailabilitySlot) []entry {
	weekEnd := week.end.AddDate(0, 0, 1)

	var entries []entry
	for _, lesson := range lessons {
		if lesson.StartAt.Before(week.start) || !lesson.StartAt.Before(weekEnd) {
			continue
		}
		label := "Lesson"
		if lesson.Title != nil {
			label = *lesson.Title
		}
		entries = append(entries, entry{
			start:  lesson.StartAt.UTC(),
			end:    lesson.EndAt.UTC(),
			label:  label,
			booked: true,
		})
	}
	for _, slot := range openSlots {
		if slot.IsBooked || slot.StartAt.Before(week.start) || !slot.StartAt.Before(weekEnd) {
			continue
		}
		entries = append(entries, entry{
			start: slot.StartAt.UTC(),
			end:   slot.EndAt.UTC(),
			label: "Open",
		})
	}
	return entries
}

func groupByDay(entries []entry) map[string][]entry {
	byDay := make(map[string][]entry)
	for _, e := range entries {
		key := e.start.Format("2006-01-02")
		byDay[key] = append(byDay[key], e)
	}
	return byDay
}

func calculateHourRange(entries []entry) hourRange {
	minHour := 24
	maxHour := 0

	for _, e := range entries {
		startH := e.start.Hour()
		endH := e.end.Hour()
		if e.end.Minute() > 0 {
			endH++
		}
		if startH < minHour {
			minHour = startH
		}
		if endH > maxHour {
			maxHour = endH
		}
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	startHour := minHour - hourPadding
	endHour := maxHour + hourPadding
	if startHour < 0 {
		startHour = 0
	}
	if endHour > 23 {
		endHour = 23
	}

	return hourRange{start: startHour, end: endHour, total: endHour - startHour + 1}
}

func drawHeader(dc *gg.Context, week weekBounds) {
	title := week.start.Format("Jan 02") + " - " + week.end.Format("Jan 02, 2006")
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, imageWidth/2, float64(headerHeight)/3, 0.5, 0.5)
}

func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	dc.SetColor(hourLabelColor)
	for hIdx := 0; hIdx < hours.total; hIdx++ {
		y := float64(headerHeight) + float64(hIdx)*cellHeight
		label := time.Date(0, 1, 1, hours.start+hIdx, 0, 0, 0, time.UTC).Format("15:04")
		dc.DrawStringAnchored(label, float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int) {
	if dayIndex%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

func drawDayHeader(dc *gg.Context, date time.Time, x, y float64, dayWidth int) {
	dc.SetColor(textColor)
	dc.DrawStringAnchored(date.Format("Mon 02.01"), x+float64(dayWidth)/2, y-14, 0.5, 0.5)
}

func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)
	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		hy := y + float64(hIdx)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

func drawEntry(dc *gg.Context, e entry, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	startHour := float64(e.start.Hour()) + float64(e.start.Minute())/60.0
	endHour := float64(e.end.Hour()) + float64(e.end.Minute())/60.0

	entryY := y + (startHour-float64(hours.start))*cellHeight
	entryHeight := (endHour - startHour) * cellHeight
	if entryHeight < minEntryHeight {
		entryHeight = minEntryHeight
	}
	entryWidth := float64(dayWidth) - float64(dayPaddingX*2)

	if e.booked {
		dc.SetColor(lessonColor)
	} else {
		dc.SetColor(openSlotColor)
	}
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), entryY+2, entryWidth, entryHeight-4, entryRadius)
	dc.Fill()

	dc.SetColor(entryText)
	label := e.start.Format("15:04") + " " + e.label
	dc.DrawStringAnchored(label, x+float64(dayWidth)/2, entryY+entryHeight/2, 0.5, 0.5)
}
