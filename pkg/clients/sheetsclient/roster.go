package sheetsclient

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/sheets/v4"
)

// RowStyle selects the background of a staff row
type RowStyle string

const (
	StylePlain           RowStyle = "plain"
	StyleTeamA           RowStyle = "team_a"
	StyleTeamB           RowStyle = "team_b"
	StyleSystemSupport   RowStyle = "system_support"
	StyleSecuritySupport RowStyle = "security_support"
	StyleReference       RowStyle = "reference"
)

// PostNightLabel marks the rest day that follows a night shift
const PostNightLabel = "P"

// ReferenceRow shows the idealised rotation of one team
type ReferenceRow struct {
	Label string
	Cells []string
}

// PublishedRosterRow is one staff member's month plus their totals
type PublishedRosterRow struct {
	Name        string
	Style       RowStyle
	Cells       []string
	Vacation    int
	DayShifts   int
	NightShifts int
	Hours       int
}

// PublishedRoster is everything written to a roster tab
type PublishedRoster struct {
	StartDate time.Time
	Days      int
	Reference []ReferenceRow
	Rows      []PublishedRosterRow
}

var statHeaders = []string{"Vacation", "Day", "Night", "Hours"}

// Text colours per display label
var labelColors = map[string]string{
	"DL":           "00BFFF",
	"D":            "008000",
	"NL":           "A52A2A",
	"N":            "0000FF",
	PostNightLabel: "FF0000",
	"R":            "CD853F",
	"V":            "000000",
}

var rowBackgrounds = map[RowStyle]string{
	StylePlain:           "FFFFFF",
	StyleTeamA:           "FFEFD5",
	StyleTeamB:           "E0FFFF",
	StyleSystemSupport:   "E6E6FA",
	StyleSecuritySupport: "F0FFF0",
	StyleReference:       "F5F5F5",
}

const (
	headerBackground   = "DDDDDD"
	vacationBackground = "FFC0CB"
)

var statBackgrounds = []string{"FFE4E1", "F0FFF0", "E6F2FF", "FFF2CC"}

// Column widths in pixels
const (
	nameColumnWidth      = 120
	dayColumnWidth       = 32
	separatorColumnWidth = 16
	statColumnWidth      = 64
)

// PublishRoster writes the roster to its own tab, titled by period. An
// existing tab with the same title is cleared and rewritten. Returns the tab
// title.
func (c *Client) PublishRoster(ctx context.Context, spreadsheetID string, roster *PublishedRoster) (string, error) {
	tabTitle := generateTabTitle(roster.StartDate, roster.Days)

	sheetID, exists, err := c.FindSheet(ctx, spreadsheetID, tabTitle)
	if err != nil {
		return "", err
	}

	if exists {
		if err := c.ClearValues(ctx, spreadsheetID, fmt.Sprintf("'%s'", tabTitle)); err != nil {
			return "", fmt.Errorf("failed to clear existing tab: %w", err)
		}
	} else {
		sheetID, err = c.CreateSheet(ctx, spreadsheetID, tabTitle)
		if err != nil {
			return "", fmt.Errorf("failed to create tab: %w", err)
		}
	}

	if err := c.UpdateValues(ctx, spreadsheetID, fmt.Sprintf("'%s'!A1", tabTitle), buildRosterValues(roster)); err != nil {
		return "", fmt.Errorf("failed to write roster: %w", err)
	}

	if _, err := c.batchUpdate(ctx, spreadsheetID, buildFormatRequests(sheetID, roster)); err != nil {
		return "", fmt.Errorf("failed to format roster: %w", err)
	}

	c.logger.Debug("Roster tab written",
		zap.String("tab", tabTitle),
		zap.Int64("sheet_id", sheetID),
		zap.Bool("replaced", exists))

	return tabTitle, nil
}

// generateTabTitle creates a tab title in the format "Wed Jan 01 2025 - Fri Jan 31 2025"
func generateTabTitle(start time.Time, days int) string {
	end := start.AddDate(0, 0, days-1)
	return fmt.Sprintf("%s - %s", start.Format("Mon Jan 02 2006"), end.Format("Mon Jan 02 2006"))
}

// buildRosterValues lays the roster out as: a day header and the reference
// rows, one blank row, then a day header with stat columns and the staff rows.
// A blank column separates the days from the stats.
func buildRosterValues(roster *PublishedRoster) [][]interface{} {
	rows := make([][]interface{}, 0, len(roster.Reference)+len(roster.Rows)+3)

	rows = append(rows, dayHeader("Reference", roster.Days, false))
	for _, ref := range roster.Reference {
		row := []interface{}{ref.Label}
		for _, cell := range ref.Cells {
			row = append(row, cell)
		}
		rows = append(rows, row)
	}

	rows = append(rows, []interface{}{})
	rows = append(rows, dayHeader("Staff", roster.Days, true))

	for _, r := range roster.Rows {
		row := []interface{}{r.Name}
		for _, cell := range r.Cells {
			row = append(row, cell)
		}
		row = append(row, "", r.Vacation, r.DayShifts, r.NightShifts, r.Hours)
		rows = append(rows, row)
	}

	return rows
}

func dayHeader(title string, days int, withStats bool) []interface{} {
	row := []interface{}{title}
	for d := 1; d <= days; d++ {
		row = append(row, d)
	}
	if withStats {
		row = append(row, "")
		for _, h := range statHeaders {
			row = append(row, h)
		}
	}
	return row
}

// buildFormatRequests styles every written cell in one UpdateCells request
// and sets the column widths
func buildFormatRequests(sheetID int64, roster *PublishedRoster) []*sheets.Request {
	var rows []*sheets.RowData

	rows = append(rows, headerRowData(roster.Days, false))
	for _, ref := range roster.Reference {
		rows = append(rows, shiftRowData(StyleReference, ref.Cells, nil))
	}
	rows = append(rows, &sheets.RowData{})
	rows = append(rows, headerRowData(roster.Days, true))
	for _, r := range roster.Rows {
		rows = append(rows, shiftRowData(r.Style, r.Cells, statCells()))
	}

	requests := []*sheets.Request{{
		UpdateCells: &sheets.UpdateCellsRequest{
			Start:  &sheets.GridCoordinate{SheetId: sheetID},
			Rows:   rows,
			Fields: "userEnteredFormat(backgroundColor,textFormat,horizontalAlignment)",
		},
	}}

	requests = append(requests,
		columnWidth(sheetID, 0, 1, nameColumnWidth),
		columnWidth(sheetID, 1, int64(roster.Days)+1, dayColumnWidth),
		columnWidth(sheetID, int64(roster.Days)+1, int64(roster.Days)+2, separatorColumnWidth),
		columnWidth(sheetID, int64(roster.Days)+2, int64(roster.Days)+2+int64(len(statHeaders)), statColumnWidth),
	)

	return requests
}

func headerRowData(days int, withStats bool) *sheets.RowData {
	cells := []*sheets.CellData{boldCell(headerBackground, "000000")}
	for d := 0; d < days; d++ {
		cells = append(cells, boldCell(headerBackground, "000000"))
	}
	if withStats {
		cells = append(cells, &sheets.CellData{})
		for _, bg := range statBackgrounds {
			cells = append(cells, boldCell(bg, "000000"))
		}
	}
	return &sheets.RowData{Values: cells}
}

func shiftRowData(style RowStyle, labels []string, stats []*sheets.CellData) *sheets.RowData {
	background := rowBackgrounds[style]
	if background == "" {
		background = rowBackgrounds[StylePlain]
	}

	cells := []*sheets.CellData{boldCell(background, "000000")}
	for _, label := range labels {
		cells = append(cells, shiftCell(background, label))
	}
	if stats != nil {
		cells = append(cells, &sheets.CellData{})
		cells = append(cells, stats...)
	}
	return &sheets.RowData{Values: cells}
}

func statCells() []*sheets.CellData {
	cells := make([]*sheets.CellData, len(statBackgrounds))
	for i, bg := range statBackgrounds {
		cells[i] = boldCell(bg, "000000")
	}
	return cells
}

// shiftCell colours the label text and marks vacation with its own background
func shiftCell(background, label string) *sheets.CellData {
	if label == "V" {
		background = vacationBackground
	}
	textColor, ok := labelColors[label]
	if !ok {
		textColor = "000000"
	}
	return boldCell(background, textColor)
}

func boldCell(background, text string) *sheets.CellData {
	return &sheets.CellData{
		UserEnteredFormat: &sheets.CellFormat{
			BackgroundColor:     hexColor(background),
			HorizontalAlignment: "CENTER",
			TextFormat: &sheets.TextFormat{
				Bold:            true,
				ForegroundColor: hexColor(text),
			},
		},
	}
}

func columnWidth(sheetID, start, end, pixels int64) *sheets.Request {
	return &sheets.Request{
		UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
			Range: &sheets.DimensionRange{
				SheetId:    sheetID,
				Dimension:  "COLUMNS",
				StartIndex: start,
				EndIndex:   end,
			},
			Properties: &sheets.DimensionProperties{PixelSize: pixels},
			Fields:     "pixelSize",
		},
	}
}

// hexColor converts an RRGGBB string to a sheets colour. Invalid input gives
// black.
func hexColor(hex string) *sheets.Color {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return &sheets.Color{}
	}
	return &sheets.Color{
		Red:   float64((v>>16)&0xFF) / 255,
		Green: float64((v>>8)&0xFF) / 255,
		Blue:  float64(v&0xFF) / 255,
	}
}
