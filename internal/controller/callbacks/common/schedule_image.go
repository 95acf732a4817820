package common

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/Freeeeeet/portal_bot/internal/model"
	"github.com/Freeeeeet/portal_bot/internal/service"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	imageWidth      = 1200
	imageHeight     = 800
	headerHeight    = 80
	leftLabelsWidth = 70
	dayPaddingX     = 6
	minSlotHeight   = 10.0
	slotBorderRad   = 5.0
	defaultMinHour  = 8
	defaultMaxHour  = 20
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	headerColor    = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 120}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{225, 226, 228, 255}

	slotFreeColor   = color.RGBA{133, 193, 85, 220}
	slotBookedColor = color.RGBA{255, 182, 193, 255}
	slotMineColor   = color.RGBA{155, 140, 235, 235}
	slotTextColor   = color.RGBA{20, 24, 28, 230}
)

// RenderScheduleImage рисует расписание экрана картинкой: колонка на дату,
// блоки слотов по вертикальной шкале часов. Слоты с сессией студента
// выделяются отдельным цветом.
func RenderScheduleImage(proj service.Projection, sessionFor func(slotID string) *model.Session, now time.Time) ([]byte, error) {
	if len(proj.Groups) == 0 {
		return nil, fmt.Errorf("no slots to render")
	}

	days := proj.Groups
	if len(days) > 7 {
		days = days[:7]
	}

	minHour, maxHour := hourRange(days)
	totalHours := maxHour - minHour + 1

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(bgColor)
	dc.Clear()

	// Заголовок
	dc.SetColor(headerColor)
	title := fmt.Sprintf("Расписание · свободно %d · занято %d · всего %d",
		proj.Summary.Available, proj.Summary.Booked, proj.Summary.Total)
	dc.DrawStringAnchored(title, imageWidth/2, headerHeight/2, 0.5, 0.5)

	gridTop := float64(headerHeight)
	gridHeight := float64(imageHeight) - gridTop - 20
	hourHeight := gridHeight / float64(totalHours)
	dayWidth := (float64(imageWidth) - leftLabelsWidth) / float64(len(days))

	// Фон колонок дней и подписи дат
	for i, day := range days {
		x := leftLabelsWidth + float64(i)*dayWidth
		if i%2 == 0 {
			dc.SetColor(evenDayColor)
		} else {
			dc.SetColor(oddDayColor)
		}
		dc.DrawRectangle(x, gridTop, dayWidth, gridHeight)
		dc.Fill()

		dc.SetColor(headerColor)
		dc.DrawStringAnchored(day.Key, x+dayWidth/2, gridTop-14, 0.5, 0.5)
	}

	// Линии и подписи часов
	for h := minHour; h <= maxHour; h++ {
		y := gridTop + float64(h-minHour)*hourHeight
		dc.SetColor(hourLineColor)
		dc.SetLineWidth(1)
		dc.DrawLine(leftLabelsWidth, y, imageWidth, y)
		dc.Stroke()

		dc.SetColor(hourLabelColor)
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", h), leftLabelsWidth/2, y, 0.5, 0.5)
	}

	// Блоки слотов
	for i, day := range days {
		x := leftLabelsWidth + float64(i)*dayWidth + dayPaddingX
		w := dayWidth - 2*dayPaddingX

		for _, slot := range day.Slots {
			start, err := slot.StartAt(time.UTC)
			if err != nil {
				continue
			}
			startOffset := float64(start.Hour()-minHour) + float64(start.Minute())/60
			y := gridTop + startOffset*hourHeight
			h := float64(slot.DurationMinutes()) / 60 * hourHeight
			if h < minSlotHeight {
				h = minSlotHeight
			}

			switch {
			case sessionFor(slot.ID) != nil:
				dc.SetColor(slotMineColor)
			case slot.IsBooked:
				dc.SetColor(slotBookedColor)
			default:
				dc.SetColor(slotFreeColor)
			}
			dc.DrawRoundedRectangle(x, y, w, h, slotBorderRad)
			dc.Fill()

			if h >= 14 {
				dc.SetColor(slotTextColor)
				dc.DrawStringAnchored(slot.StartTime, x+w/2, y+h/2, 0.5, 0.5)
			}
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode schedule image: %w", err)
	}
	return buf.Bytes(), nil
}

// hourRange вычисляет диапазон часов по слотам, с запасом в час по краям
func hourRange(days []service.DateGroup) (int, int) {
	minHour, maxHour := 24, -1
	for _, day := range days {
		for _, slot := range day.Slots {
			start, err := slot.StartAt(time.UTC)
			if err != nil {
				continue
			}
			endMinute := start.Hour()*60 + start.Minute() + slot.DurationMinutes()
			if start.Hour() < minHour {
				minHour = start.Hour()
			}
			if endHour := (endMinute + 59) / 60; endHour > maxHour {
				maxHour = endHour
			}
		}
	}
	if maxHour < 0 {
		return defaultMinHour, defaultMaxHour
	}
	if minHour > 0 {
		minHour--
	}
	if maxHour < 23 {
		maxHour++
	}
	return minHour, maxHour
}
