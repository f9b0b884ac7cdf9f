// Package export renders telemetry readings as downloadable CSV and XLSX
// files for the dashboard's export buttons.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/agos-monitor/agos/internal/alert"
	"github.com/agos-monitor/agos/internal/station"
	"github.com/agos-monitor/agos/internal/telemetry"
)

var columns = []string{"time", "station", "name", "water_level", "hourly_rain", "daily_rain", "wind_speed", "humidity", "temperature"}

func formatFloat(f telemetry.Float) string {
	if !f.Valid {
		return ""
	}
	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// ToCSV writes the readings as CSV, one row per reading in feed order.
func ToCSV(w io.Writer, readings []telemetry.Reading, fleet station.Fleet) error {
	c := csv.NewWriter(w)

	if err := c.Write(columns); err != nil {
		return err
	}

	for _, r := range readings {
		err := c.Write([]string{
			formatTime(r.Time),
			r.StationID,
			fleet.Name(r.StationID),
			formatFloat(r.WaterLevel),
			formatFloat(r.HourlyRain),
			formatFloat(r.DailyRain),
			formatFloat(r.WindSpeed),
			formatFloat(r.Humidity),
			formatFloat(r.Temperature),
		})
		if err != nil {
			return err
		}
	}

	c.Flush()

	return c.Error()
}

func excelPos(x, y uint) string {
	pos, err := excelize.CoordinatesToCellName(int(x+1), int(y+1))
	if err != nil {
		panic(err)
	}
	return pos
}

// ToXlsx writes the readings as a styled workbook. Rows are underlined in
// the color of their water level severity so a flooded hour stands out when
// scrolling.
func ToXlsx(w io.Writer, readings []telemetry.Reading, fleet station.Fleet, thresholds alert.Thresholds, createdAt time.Time) error {
	xlsx := excelize.NewFile()
	defer xlsx.Close()
	xlsx.SetSheetName("Sheet1", "readings")

	xlsx.SetAppProps(&excelize.AppProperties{
		Application: "Agos",
	})
	xlsx.SetDocProps(&excelize.DocProperties{
		Created:        createdAt.Format(time.RFC3339),
		Modified:       createdAt.Format(time.RFC3339),
		Creator:        "Agos",
		LastModifiedBy: "Agos",
	})

	zone, _ := createdAt.Zone()
	xlsx.SetCellStr("readings", "A1", fmt.Sprintf("time (%s)", zone))
	for col, name := range columns[1:] {
		xlsx.SetCellStr("readings", excelPos(uint(col+1), 0), name)
	}

	colors := map[alert.Severity]string{
		alert.SeverityNormal:   "89C923",
		alert.SeverityAdvisory: "DDA100",
		alert.SeverityAlert:    "FF8C00",
		alert.SeverityWarning:  "FF5030",
		alert.SeverityCritical: "FF2D00",
	}

	setValue := func(x, y uint, value any, color string, format *string) {
		pos := excelPos(x, y)
		xlsx.SetCellValue("readings", pos, value)
		sid, _ := xlsx.NewStyle(&excelize.Style{
			CustomNumFmt: format,
			Border:       []excelize.Border{{Type: "bottom", Style: 1, Color: color}},
		})
		xlsx.SetCellStyle("readings", pos, pos, sid)
	}
	setFloat := func(x, y uint, f telemetry.Float, color string) {
		if f.Valid {
			setValue(x, y, f.Value, color, nil)
		} else {
			setValue(x, y, "", color, nil)
		}
	}
	datefmt := "yyyy-mm-dd hh:mm:ss"

	for i, r := range readings {
		row := uint(i + 1)
		color := colors[thresholds.Classify(r.WaterLevel)]

		if r.Time.IsZero() {
			setValue(0, row, "", color, nil)
		} else {
			setValue(0, row, r.Time.In(createdAt.Location()), color, &datefmt)
		}
		setValue(1, row, r.StationID, color, nil)
		setValue(2, row, fleet.Name(r.StationID), color, nil)
		setFloat(3, row, r.WaterLevel, color)
		setFloat(4, row, r.HourlyRain, color)
		setFloat(5, row, r.DailyRain, color)
		setFloat(6, row, r.WindSpeed, color)
		setFloat(7, row, r.Humidity, color)
		setFloat(8, row, r.Temperature, color)
	}

	err := xlsx.SetPanes("readings", &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "topLeft",
	})
	if err != nil {
		return err
	}

	xlsx.SetColWidth("readings", "A", "A", 20)
	xlsx.SetColWidth("readings", "C", "C", 25)

	xlsx.AutoFilter("readings", "A1:"+excelPos(uint(len(columns)-1), 0), nil)

	return xlsx.Write(w)
}
