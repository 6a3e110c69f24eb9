package components

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/snapfeed/internal/domain"
	"github.com/mmcdole/snapfeed/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for grid
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Padding inside the border (Padding(0,1) = 1 left + 1 right)
	HorizontalPadding = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	// Title line at top of content area
	TitleLines = 1

	MinCellWidth = 12
)

// Grid renders the aggregated image list as rows of fixed-width cells.
// The cursor and offset are expressed against the visible (possibly
// filtered) items; offset counts rows, not items.
type Grid struct {
	images []domain.ImageRecord

	columns int

	// Selection
	cursor      int
	offset      int
	visibleRows int

	// Dimensions
	width   int
	height  int
	focused bool

	title string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into images
}

// NewGrid creates a new grid with the given column count
func NewGrid(columns int) Grid {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	if columns < 1 {
		columns = 1
	}

	return Grid{
		columns:     columns,
		filterInput: ti,
		visibleRows: 1,
	}
}

// SetImages replaces the grid content. The feed only ever grows, so the
// cursor and scroll position are kept.
func (g *Grid) SetImages(images []domain.ImageRecord) {
	g.images = images
	if g.filterActive && g.filterQuery != "" {
		g.refilter()
	}
	g.clampCursor()
}

// Images returns the unfiltered grid content
func (g Grid) Images() []domain.ImageRecord {
	return g.images
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.recalcVisibleRows()
	g.ensureVisible()
}

// SetTitle sets the text on the first content line
func (g *Grid) SetTitle(title string) {
	g.title = title
}

// SetFocused sets the focus state
func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
}

// Columns returns the configured column count
func (g Grid) Columns() int {
	return g.columns
}

// Cursor returns the current cursor position
func (g Grid) Cursor() int {
	return g.cursor
}

// SetCursor sets the cursor position
func (g *Grid) SetCursor(pos int) {
	g.cursor = pos
	g.clampCursor()
}

// VisibleRows returns how many rows fit in the current height
func (g Grid) VisibleRows() int {
	return g.visibleRows
}

// Len returns the number of items shown (accounting for filter)
func (g Grid) Len() int {
	if g.filteredIdx != nil {
		return len(g.filteredIdx)
	}
	return len(g.images)
}

// Total returns the number of items without filtering
func (g Grid) Total() int {
	return len(g.images)
}

// LastVisible returns the index of the last item on screen, or -1 when
// nothing is shown.
func (g Grid) LastVisible() int {
	count := g.Len()
	if count == 0 {
		return -1
	}
	last := (g.offset+g.visibleRows)*g.columns - 1
	if last >= count {
		last = count - 1
	}
	return last
}

// Selected returns the record under the cursor
func (g Grid) Selected() (domain.ImageRecord, bool) {
	count := g.Len()
	if count == 0 || g.cursor >= count {
		return domain.ImageRecord{}, false
	}
	return g.images[g.mapIndex(g.cursor)], true
}

// IsEmpty returns true if there are no items
func (g Grid) IsEmpty() bool {
	return g.Len() == 0
}

// recalcVisibleRows accounts for title line, scroll indicators and filter bar
func (g *Grid) recalcVisibleRows() {
	interiorHeight := g.height - BorderHeight
	g.visibleRows = interiorHeight - ScrollIndicatorLines - TitleLines
	if g.filterActive {
		g.visibleRows--
	}
	if g.visibleRows < 1 {
		g.visibleRows = 1
	}
}

func (g *Grid) clampCursor() {
	max := g.Len() - 1
	if max < 0 {
		g.cursor = 0
		g.offset = 0
		return
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
	if g.cursor > max {
		g.cursor = max
	}
	g.ensureVisible()
}

// ensureVisible scrolls so the cursor row is on screen
func (g *Grid) ensureVisible() {
	row := g.cursor / g.columns
	if row < g.offset {
		g.offset = row
	}
	if row >= g.offset+g.visibleRows {
		g.offset = row - g.visibleRows + 1
	}
}

// ToggleFilter activates the filter input
func (g *Grid) ToggleFilter() {
	g.filterActive = true
	g.filterInput.Focus()
	g.recalcVisibleRows()
}

// IsFiltering returns true if filter mode is active (showing filtered results)
func (g Grid) IsFiltering() bool {
	return g.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused (typing mode)
func (g Grid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (g *Grid) ClearFilter() {
	g.clearFilter()
}

func (g *Grid) clearFilter() {
	g.filterActive = false
	g.filterQuery = ""
	g.filteredIdx = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.recalcVisibleRows()
	g.clampCursor()
}

// applyFilter filters items based on the current query and resets the cursor
func (g *Grid) applyFilter() {
	g.filterQuery = g.filterInput.Value()
	g.refilter()
	g.cursor = 0
	g.offset = 0
}

func (g *Grid) refilter() {
	if g.filterQuery == "" {
		g.filteredIdx = nil
		return
	}

	labels := make([]string, len(g.images))
	for i, img := range g.images {
		labels[i] = strings.ToLower(filterText(img))
	}

	matches := fuzzy.Find(strings.ToLower(g.filterQuery), labels)

	g.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		g.filteredIdx[i] = match.Index
	}
}

// mapIndex maps a cursor position to the actual index in the data
func (g Grid) mapIndex(i int) int {
	if g.filteredIdx != nil && i < len(g.filteredIdx) {
		return g.filteredIdx[i]
	}
	return i
}

// Init initializes the component
func (g Grid) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	if !g.focused {
		return g, nil
	}

	// Typing into the filter
	if g.filterActive && g.filterInput.Focused() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "esc":
				g.clearFilter()
				return g, nil
			case "enter":
				// Accept filter, blur input to allow navigation
				g.filterInput.Blur()
				return g, nil
			case "backspace":
				if g.filterInput.Value() == "" {
					g.clearFilter()
					return g, nil
				}
			}
		}

		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		g.applyFilter()
		return g, cmd
	}

	// Navigating filter results
	if g.filterActive {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "esc":
				g.clearFilter()
				return g, nil
			case "/":
				g.filterInput.Focus()
				return g, nil
			}
		}
	}

	count := g.Len()
	if count == 0 {
		return g, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	halfPage := (g.visibleRows / 2) * g.columns
	if halfPage < g.columns {
		halfPage = g.columns
	}

	switch keyMsg.String() {
	case "j", "down":
		if g.cursor+g.columns < count {
			g.cursor += g.columns
		} else if g.cursor/g.columns < (count-1)/g.columns {
			// Partial last row: land on its final cell
			g.cursor = count - 1
		}
	case "k", "up":
		if g.cursor-g.columns >= 0 {
			g.cursor -= g.columns
		}
	case "l", "right":
		if g.cursor < count-1 {
			g.cursor++
		}
	case "h", "left":
		if g.cursor > 0 {
			g.cursor--
		}
	case "g", "home":
		g.cursor = 0
	case "G", "end":
		g.cursor = count - 1
	case "ctrl+d", "pgdown":
		g.cursor += halfPage
		if g.cursor >= count {
			g.cursor = count - 1
		}
	case "ctrl+u", "pgup":
		g.cursor -= halfPage
		if g.cursor < 0 {
			g.cursor = 0
		}
	default:
		return g, nil
	}
	g.ensureVisible()

	return g, nil
}

// View renders the component
func (g Grid) View() string {
	style := styles.InactiveBorder
	if g.focused {
		style = styles.ActiveBorder
	}

	// Subtract frame (border) size so total rendered size equals g.width x g.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(g.width - frameW).
		Height(g.height - frameH).
		Render(g.renderCells())
}

func (g Grid) cellWidth() int {
	inner := g.width - BorderWidth - HorizontalPadding
	w := inner / g.columns
	if w < MinCellWidth {
		w = MinCellWidth
	}
	return w
}

func (g Grid) renderCells() string {
	titleLine := " "
	if g.title != "" {
		titleLine = styles.AccentStyle.Render(g.title)
	}

	count := g.Len()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render("No images")
		if g.filterActive && g.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := titleLine + "\n" + " " + "\n" + emptyMsg + "\n" + " "
		if g.filterActive {
			content += "\n" + g.renderFilterBar()
		}
		return content
	}

	width := g.cellWidth()
	totalRows := (count + g.columns - 1) / g.columns
	endRow := g.offset + g.visibleRows
	if endRow > totalRows {
		endRow = totalRows
	}

	lines := make([]string, 0, endRow-g.offset)
	for row := g.offset; row < endRow; row++ {
		var b strings.Builder
		for col := 0; col < g.columns; col++ {
			i := row*g.columns + col
			if i >= count {
				break
			}
			b.WriteString(g.renderCell(i, width))
		}
		lines = append(lines, b.String())
	}

	// Always reserve the indicator lines to prevent layout shifts
	header := " "
	if g.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if endRow < totalRows {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if g.filterActive {
		content += "\n" + g.renderFilterBar()
	}
	return content
}

func (g Grid) renderCell(i, width int) string {
	idx := g.mapIndex(i)
	img := g.images[idx]

	number := fmt.Sprintf("%d", idx+1)
	accent := styles.Accent
	label := styles.Truncate(Label(img), width-len(number)-3)

	parts := []styles.RowPart{
		{Text: number, Foreground: &accent},
		{Text: " " + label},
	}
	return styles.RenderCell(parts, i == g.cursor, width)
}

func (g Grid) renderFilterBar() string {
	input := g.filterInput.View()

	countStr := ""
	if g.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", g.Len(), g.Total()))
	}

	return input + countStr
}

// Label is the short display text for a record: the last path segment of
// its URL, or a placeholder when the remote supplied no URL.
func Label(img domain.ImageRecord) string {
	if img.URL == "" {
		return "(no url)"
	}
	u, err := url.Parse(img.URL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return img.URL
	}
	return path.Base(u.Path)
}

func filterText(img domain.ImageRecord) string {
	return fmt.Sprintf("p%d %s", img.Page, Label(img))
}
