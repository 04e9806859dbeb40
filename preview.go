package main

import (
	"context"
	"fmt"
	"image"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"

	"inkcal/daycolor"
	"inkcal/frame"
	"inkcal/grid"
	"inkcal/holiday"
	"inkcal/raster"
)

type model struct {
	styles     styleSet
	date       time.Time
	picker     picker
	composer   *frame.Composer
	resolution image.Point
	holidays   holiday.Set
	agenda     string
	showAgenda bool
}

type pickerField int

const (
	pickNone pickerField = iota
	pickYear
	pickMonth
)

// picker edits a copy of the shown date; enter applies it.
type picker struct {
	field  pickerField
	date   time.Time
	digits string
}

func (p *picker) open(field pickerField, date time.Time) {
	*p = picker{field: field, date: date}
}

func (p *picker) close() {
	*p = picker{}
}

func (p *picker) step(delta int) {
	if p.field == pickYear {
		delta *= 12
	}
	p.date = shiftMonths(p.date, delta)
	p.digits = ""
}

func (p *picker) typeDigits(runes []rune) {
	for _, r := range runes {
		if r >= '0' && r <= '9' {
			p.digits += string(r)
		}
	}
	if p.field == pickMonth && len(p.digits) > 2 {
		p.digits = p.digits[len(p.digits)-2:]
	}
	p.parse()
}

func (p *picker) backspace() {
	if p.digits == "" {
		return
	}
	p.digits = p.digits[:len(p.digits)-1]
	p.parse()
}

// parse moves the picker date to the typed year or month. Partial or out of
// range input leaves it where it is.
func (p *picker) parse() {
	val, err := strconv.Atoi(p.digits)
	if err != nil {
		return
	}
	year, month := p.date.Year(), p.date.Month()
	switch p.field {
	case pickYear:
		year = val
	case pickMonth:
		if val < 1 || val > 12 {
			return
		}
		month = time.Month(val)
	}
	p.date = clampedDate(year, month, p.date.Day(), p.date.Location())
}

func (p picker) label() string {
	if p.field == pickYear {
		return fmt.Sprintf("Year %d", p.date.Year())
	}
	return fmt.Sprintf("Month %2d %s", int(p.date.Month()), p.date.Month())
}

// clampedDate returns midnight of year/month/day, pulling day back to the
// last day of shorter months.
func clampedDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	if last := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day(); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func shiftMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	return clampedDate(first.Year(), first.Month(), t.Day(), t.Location())
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func newModel(comp *frame.Composer, res image.Point, now time.Time, holidays holiday.Set, agenda string) model {
	return model{
		styles:     newStyles(),
		composer:   comp,
		resolution: res,
		holidays:   holidays,
		agenda:     agenda,
		date:       midnight(now),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.showAgenda {
		switch key.String() {
		case "esc", "e", "q":
			m.showAgenda = false
		}
		return m, nil
	}

	if m.picker.field != pickNone {
		m.pickerKey(key)
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "left", "h":
		m.date = m.date.AddDate(0, 0, -1)
	case "right", "l":
		m.date = m.date.AddDate(0, 0, 1)
	case "up", "k":
		m.date = m.date.AddDate(0, 0, -7)
	case "down", "j":
		m.date = m.date.AddDate(0, 0, 7)
	case "n":
		m.date = shiftMonths(m.date, 1)
	case "p":
		m.date = shiftMonths(m.date, -1)
	case "N":
		m.date = shiftMonths(m.date, 12)
	case "P":
		m.date = shiftMonths(m.date, -12)
	case "t", "T":
		m.date = midnight(time.Now().In(m.date.Location()))
	case "y", "Y":
		m.picker.open(pickYear, m.date)
	case "m", "M":
		m.picker.open(pickMonth, m.date)
	case "e", "E":
		m.showAgenda = true
	}
	return m, nil
}

// pickerKey handles input while a picker is open. Letters are swallowed so
// vim keys do not move the date underneath it.
func (m *model) pickerKey(key tea.KeyMsg) {
	if key.Type == tea.KeyRunes {
		m.picker.typeDigits(key.Runes)
		return
	}

	switch key.String() {
	case "backspace", "ctrl+h":
		m.picker.backspace()
	case "esc", "ctrl+c":
		m.picker.close()
	case "enter":
		m.date = m.picker.date
		m.picker.close()
	case "up":
		m.picker.step(-1)
	case "down":
		m.picker.step(1)
	case "pgup":
		m.picker.step(-10)
	case "pgdown":
		m.picker.step(10)
	}
}

func (m model) View() string {
	if m.showAgenda {
		return renderAgendaView(m.agenda, m.styles)
	}

	var b strings.Builder
	b.WriteString(renderControlBar(m.date, m.picker.field, m.styles))
	b.WriteString("\n\n")

	if m.picker.field != pickNone {
		b.WriteString(m.styles.dropdownCursor.Render(m.picker.label()))
		b.WriteString("  ")
		b.WriteString(m.styles.help.Render("Enter: Apply  Esc: Cancel  Up/Down: Navigate  Type digits"))
		b.WriteString("\n\n")
	}

	canvas, err := m.composer.Render(frame.Input{
		Resolution: m.resolution,
		Today:      m.date,
		Holidays:   m.holidays,
		Agenda:     m.agenda,
	})
	if err != nil {
		b.WriteString(m.styles.help.Render(fmt.Sprintf("Error: %v", err)))
		return b.String()
	}
	b.WriteString(renderBlocks(canvas))
	b.WriteString("\n\n")

	wd := m.date.Weekday()
	cell := grid.DateCell{
		Date:         m.date,
		Today:        true,
		CurrentMonth: true,
		Weekend:      wd == time.Saturday || wd == time.Sunday,
	}
	selected := fmt.Sprintf("Showing: %s (%s)", cell.ISO(), daycolor.Explain(cell, m.holidays.Contains(m.date)))
	b.WriteString(m.styles.footer.Render(selected))
	b.WriteString("\n")

	help := "Arrows/Vim: Move  n/p: Next/Prev month  N/P: Next/Prev year  Y/M: Pick year/month  t: Today  e: Agenda  q: Quit"
	b.WriteString(m.styles.help.Render(help))

	return b.String()
}

func renderAgendaView(agenda string, styles styleSet) string {
	var b strings.Builder
	b.WriteString(styles.header.Render("Agenda"))
	b.WriteString("\n\n")
	if agenda == "" {
		b.WriteString(styles.help.Render("No upcoming events"))
	} else {
		b.WriteString(styles.day.Render(agenda))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.help.Render("Press 'e' or 'esc' to return"))
	return b.String()
}

func renderControlBar(date time.Time, field pickerField, styles styleSet) string {
	yearStyle := styles.control
	monthStyle := styles.control
	switch field {
	case pickYear:
		yearStyle = styles.controlActive
	case pickMonth:
		monthStyle = styles.controlActive
	}
	return yearStyle.Render(fmt.Sprintf("Year [%d]", date.Year())) +
		strings.Repeat(" ", 6) +
		monthStyle.Render(fmt.Sprintf("Month [%s]", date.Month()))
}

var paletteHex = [...]lipgloss.Color{
	raster.Background: "#000000",
	raster.Foreground: "#ffffff",
	raster.Accent:     "#c81e1e",
}

// renderBlocks draws two pixel rows per terminal line using upper half
// blocks: the glyph takes the top pixel, the cell background the bottom.
func renderBlocks(m *image.Paletted) string {
	b := m.Bounds()
	styles := make(map[[2]uint8]lipgloss.Style)
	style := func(top, bottom uint8) lipgloss.Style {
		key := [2]uint8{top, bottom}
		s, ok := styles[key]
		if !ok {
			s = lipgloss.NewStyle().
				Foreground(paletteHex[top%uint8(len(paletteHex))]).
				Background(paletteHex[bottom%uint8(len(paletteHex))])
			styles[key] = s
		}
		return s
	}

	lines := make([]string, 0, (b.Dy()+1)/2)
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var line strings.Builder
		run := 0
		var cur [2]uint8
		for x := b.Min.X; x < b.Max.X; x++ {
			top := m.ColorIndexAt(x, y)
			bottom := uint8(raster.Background)
			if y+1 < b.Max.Y {
				bottom = m.ColorIndexAt(x, y+1)
			}
			key := [2]uint8{top, bottom}
			if run > 0 && key != cur {
				line.WriteString(style(cur[0], cur[1]).Render(strings.Repeat("▀", run)))
				run = 0
			}
			cur = key
			run++
		}
		if run > 0 {
			line.WriteString(style(cur[0], cur[1]).Render(strings.Repeat("▀", run)))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

type styleSet struct {
	header         lipgloss.Style
	day            lipgloss.Style
	footer         lipgloss.Style
	help           lipgloss.Style
	control        lipgloss.Style
	controlActive  lipgloss.Style
	dropdownCursor lipgloss.Style
}

func newStyles() styleSet {
	base := lipgloss.NewStyle().Padding(0).Margin(0)

	return styleSet{
		header:         base.Copy().Foreground(lipgloss.Color("213")).Bold(true),
		day:            base.Copy().Foreground(lipgloss.Color("252")),
		footer:         base.Copy().Foreground(lipgloss.Color("248")),
		help:           base.Copy().Foreground(lipgloss.Color("244")),
		control:        base.Copy().Foreground(lipgloss.Color("153")).Bold(true),
		controlActive:  base.Copy().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("57")).Bold(true),
		dropdownCursor: base.Copy().Padding(0, 1).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("57")).Bold(true),
	}
}

func previewAction(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if !frame.Supported(a.resolution()) {
		return cli.Exit(fmt.Errorf("%w: %dx%d", frame.ErrUnsupportedResolution, a.config.Width, a.config.Height), 1)
	}
	comp, err := a.composer()
	if err != nil {
		return cli.Exit(err, 1)
	}
	now, err := a.today(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	ctx, cancel := context.WithTimeout(c.Context, fetchTimeout)
	defer cancel()

	text, err := a.agenda(ctx, c.String("agenda-file"), time.Now().In(a.loc))
	if err != nil {
		// The preview is still useful without events.
		a.logger.Printf("agenda unavailable: %v", err)
	}
	holidays := a.holidays(ctx, c.Bool("offline"))

	if _, err := tea.NewProgram(newModel(comp, a.resolution(), now, holidays, text)).Run(); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}
