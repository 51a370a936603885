// Package render строит SVG-теплокарту совершённых намазов по календарному
// представлению. Чистая функция без побочных эффектов и без доступа
// к хранилищу.
package render

import (
	"fmt"
	"strings"

	"github.com/magabrotheeeer/prayer-tracker/internal/models"
)

const (
	cellSize      = 30
	cellPadding   = 20
	labelPaddingX = 100
	labelPaddingY = 100

	colorDone   = "#21c35d"
	colorMissed = "#da204c"
)

// Heatmap возвращает SVG: строки — дни, столбцы — пять намазов,
// зелёная ячейка — совершённый намаз, красная — пропущенный.
// Один и тот же вход всегда даёт один и тот же SVG.
func Heatmap(days []models.DayEntry, caption string) string {
	width := len(models.PrayerNames)*(cellSize+cellPadding) + labelPaddingX + 300
	height := len(days)*(cellSize+cellPadding) + labelPaddingY + 10

	var svg strings.Builder

	fmt.Fprintf(&svg, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, width, height)
	svg.WriteString(`<style>
            text { font-family: Arial, sans-serif; fill: white; }
            .title { font-size: 20px; font-weight: bold; }
            .axis-label { font-size: 14px; font-weight: bold; }
            .legend-text { font-size: 12px; }
            rect { stroke: #444; stroke-width: 1; }
        </style>`)

	svg.WriteString(`<rect width="100%" height="100%" fill="#000000" rx="15" ry="15"/>`)

	fmt.Fprintf(&svg, `<text x="%d" y="40" class="title" text-anchor="middle">%s</text>`,
		width/2, caption)

	// подписи столбцов — названия намазов
	for i, prayer := range models.PrayerNames {
		x := i*(cellSize+cellPadding) + labelPaddingX
		y := labelPaddingY - 20
		fmt.Fprintf(&svg, `<text x="%d" y="%d" class="axis-label" text-anchor="middle">%s</text>`,
			x+cellSize/2, y, prayer)
	}

	// подписи строк — даты в формате DD-MM-YYYY
	for i, day := range days {
		x := labelPaddingX - 10
		y := i*(cellSize+cellPadding) + labelPaddingY
		fmt.Fprintf(&svg, `<text x="%d" y="%d" class="axis-label" text-anchor="end" alignment-baseline="middle">%s</text>`,
			x, y+cellSize/2, displayDate(day.Date))
	}

	for row, day := range days {
		for col, done := range day.Flags() {
			color := colorMissed
			if done {
				color = colorDone
			}
			x := col*(cellSize+cellPadding) + labelPaddingX
			y := row*(cellSize+cellPadding) + labelPaddingY
			fmt.Fprintf(&svg, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s" rx="5" ry="5"/>`,
				x, y, cellSize, cellSize, color)
		}
	}

	writeLegend(&svg, width, height)

	svg.WriteString("</svg>")
	return svg.String()
}

// displayDate переводит "2006-01-02" в "02-01-2006" для подписи оси.
func displayDate(date string) string {
	if len(date) != 10 {
		return date
	}
	return date[8:10] + "-" + date[5:7] + "-" + date[0:4]
}

func writeLegend(svg *strings.Builder, width, height int) {
	legendX := width - 170
	legendY := height - 100
	legendItems := []struct {
		color string
		label string
	}{
		{colorDone, "Prayer Done"},
		{colorMissed, "Prayer Not Done"},
	}

	fmt.Fprintf(svg, `<rect x="%d" y="%d" width="140" height="75" fill="#222" stroke="#444" stroke-width="1" rx="10" ry="10"/>`,
		legendX-5, legendY-5)
	for i, item := range legendItems {
		y := legendY + i*(cellSize+5)
		fmt.Fprintf(svg, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s" rx="5" ry="5"/>`,
			legendX, y, cellSize, cellSize, item.color)
		fmt.Fprintf(svg, `<text x="%d" y="%d" class="legend-text" text-anchor="start" alignment-baseline="middle">%s</text>`,
			legendX+cellSize+10, y+cellSize/2, item.label)
	}
}
