package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/henri123lemoine/evenup/internal/form"
	"github.com/henri123lemoine/evenup/internal/ledger"
)

// State constants (matching app.State)
const (
	StateBrowse = iota
	StateFilter
	StateHelp
)

// Focus constants (matching app.Focus)
const (
	FocusList = iota
	FocusAddForm
	FocusSplitForm
)

// HelpBinding represents a keybinding for help display.
type HelpBinding struct {
	Keys string
	Desc string
}

// HelpSection represents a section of help bindings.
type HelpSection struct {
	Title    string
	Bindings []HelpBinding
}

// AddFormParams describes the add-friend form.
type AddFormParams struct {
	NameInput  string
	ImageInput string
	Field      int // 0 name, 1 image, 2 add button
}

// SplitFormParams describes the split-bill form.
type SplitFormParams struct {
	FriendName    string
	BillInput     string
	ExpenseInput  string
	FriendExpense float64
	Payer         form.Payer
	Field         int // 0 bill, 1 expense, 2 payer, 3 split button
}

// RenderParams contains all parameters needed for rendering.
type RenderParams struct {
	State        int
	Focus        int
	Friends      []ledger.Friend
	Total        int
	Cursor       int
	Selection    ledger.Selection
	PanelOpen    bool
	AddForm      *AddFormParams
	SplitForm    *SplitFormParams
	Summary      ledger.Summary
	Currency     string
	ShowImages   bool
	ShowSummary  bool
	Status       string
	FilterInput  string
	FilterValue  string
	HelpSections []HelpSection
	Width        int
	Height       int
}

// MinWidth is the absolute minimum terminal width we try to support.
const MinWidth = 30

// MinHeight is the absolute minimum terminal height we try to support.
const MinHeight = 8

// SideBySideWidth is the width from which the split form sits beside the
// friend list instead of below it.
const SideBySideWidth = 90

// Render renders the full UI.
func Render(p RenderParams) string {
	if p.Width < MinWidth {
		p.Width = MinWidth
	}
	if p.Height < MinHeight {
		p.Height = MinHeight
	}

	if p.State == StateHelp {
		return renderHelp(p)
	}

	sideBySide := p.Width >= SideBySideWidth && p.SplitForm != nil
	sidebarWidth := p.Width
	if sideBySide {
		sidebarWidth = p.Width / 2
	}

	sidebar := renderSidebar(p, sidebarWidth)
	if p.SplitForm == nil {
		return sidebar
	}

	if sideBySide {
		split := renderSplitForm(*p.SplitForm, p.Focus == FocusSplitForm, p.Width-sidebarWidth)
		return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, split)
	}
	split := renderSplitForm(*p.SplitForm, p.Focus == FocusSplitForm, p.Width)
	return lipgloss.JoinVertical(lipgloss.Left, sidebar, split)
}

// renderSidebar renders the friend list, the add-friend form when open,
// and the panel toggle.
func renderSidebar(p RenderParams, width int) string {
	var b strings.Builder
	contentWidth := width - 6 // Account for box borders and padding

	header := HeaderStyle.Render("FRIENDS")
	if p.State == StateFilter || p.FilterValue != "" {
		header += "  " + p.FilterInput
	}
	b.WriteString(header + "\n")
	b.WriteString(divider(contentWidth) + "\n")

	if len(p.Friends) == 0 {
		if p.FilterValue != "" {
			b.WriteString(ImageStyle.Render("No matches found.") + "\n")
		} else {
			b.WriteString(ImageStyle.Render("No friends yet. Press 'a' to add one.") + "\n")
		}
	}

	listFocused := p.Focus == FocusList && p.State != StateFilter
	for i, f := range p.Friends {
		selected := isSelected(p.Selection, f.ID)
		b.WriteString(RenderFriend(f, FriendRowParams{
			Selected:  selected,
			Cursor:    listFocused && i == p.Cursor,
			Currency:  p.Currency,
			ShowImage: p.ShowImages,
			Width:     contentWidth,
		}))
		b.WriteString("\n")
		if i < len(p.Friends)-1 {
			b.WriteString("\n")
		}
	}

	if p.FilterValue != "" && p.Total > len(p.Friends) {
		b.WriteString(ImageStyle.Render(fmt.Sprintf("%d of %d friends", len(p.Friends), p.Total)) + "\n")
	}

	if p.PanelOpen && p.AddForm != nil {
		b.WriteString("\n" + renderAddForm(*p.AddForm, p.Focus == FocusAddForm))
		b.WriteString("\n")
	}

	label := "Add Friend"
	if p.PanelOpen {
		label = "Close"
	}
	b.WriteString("\n" + Button{Label: label}.View() + "\n")

	if p.ShowSummary {
		b.WriteString("\n" + renderSummary(p.Summary, p.Currency) + "\n")
	}

	if p.Status != "" {
		b.WriteString("\n" + SelectedStyle.Render(truncate(p.Status, contentWidth)) + "\n")
	}

	b.WriteString(divider(contentWidth) + "\n")
	b.WriteString(HelpStyle.Render(footerHelp(p, contentWidth)))

	style := BoxStyle
	if p.Focus == FocusList || p.Focus == FocusAddForm {
		style = FocusedBoxStyle
	}
	return wrapInBox(style, b.String(), width)
}

// FriendRowParams describes how one friend row is drawn.
type FriendRowParams struct {
	Selected  bool
	Cursor    bool
	Currency  string
	ShowImage bool
	Width     int
}

// RenderFriend renders one friend: name, image, balance message and the
// select/close toggle.
func RenderFriend(f ledger.Friend, p FriendRowParams) string {
	cursor := "  "
	if p.Cursor {
		cursor = SelectedStyle.Render(SymbolCursor + " ")
	}

	name := NameStyle.Render(f.Name)
	if p.Selected {
		name = SelectedStyle.Render(SymbolSelected + " " + f.Name)
	}

	label := "Select"
	if p.Selected {
		label = "Close"
	}
	button := Button{Label: label, Focused: p.Cursor}.View()

	gap := p.Width - lipgloss.Width(cursor) - lipgloss.Width(name) - lipgloss.Width(button)
	if gap < 1 {
		gap = 1
	}
	lines := []string{cursor + name + strings.Repeat(" ", gap) + button}

	indent := "    "
	if p.ShowImage && f.Image != "" {
		lines = append(lines, indent+ImageStyle.Render(truncate(f.Image, p.Width-len(indent))))
	}
	lines = append(lines, indent+renderBalance(f, p.Currency))

	return strings.Join(lines, "\n")
}

// BalanceMessage returns the sentence describing where the user stands
// with f.
func BalanceMessage(f ledger.Friend, currency string) string {
	switch f.Standing() {
	case ledger.Owe:
		return fmt.Sprintf("You owe %s %s", f.Name, FormatAmount(currency, math.Abs(f.Balance)))
	case ledger.Owed:
		return fmt.Sprintf("%s owes You %s", f.Name, FormatAmount(currency, f.Balance))
	default:
		return fmt.Sprintf("You and %s are even", f.Name)
	}
}

func renderBalance(f ledger.Friend, currency string) string {
	msg := BalanceMessage(f, currency)
	switch f.Standing() {
	case ledger.Owe:
		return OweStyle.Render(msg)
	case ledger.Owed:
		return OwedStyle.Render(msg)
	default:
		return EvenStyle.Render(msg)
	}
}

// FormatAmount prints v with the shortest representation that reads back
// to the same float, prefixed by currency.
func FormatAmount(currency string, v float64) string {
	return currency + strconv.FormatFloat(v, 'f', -1, 64)
}

func renderSummary(s ledger.Summary, currency string) string {
	net := s.Net()
	sign := ""
	if net < 0 {
		sign = "-"
	}
	netText := "Net " + sign + FormatAmount(currency, math.Abs(net))

	style := EvenStyle
	switch ledger.StandingOf(net) {
	case ledger.Owe:
		style = OweStyle
	case ledger.Owed:
		style = OwedStyle
	}

	return OwedStyle.Render("Owed to you "+FormatAmount(currency, s.Owed)) +
		HelpStyle.Render(" • ") +
		OweStyle.Render("You owe "+FormatAmount(currency, s.Owing)) + "\n" +
		style.Render(netText)
}

// renderAddForm renders the add-friend form.
func renderAddForm(p AddFormParams, focused bool) string {
	var b strings.Builder

	b.WriteString(fieldLabel("Friend name", focused && p.Field == 0) + "\n")
	b.WriteString(p.NameInput + "\n")
	b.WriteString(fieldLabel("Image URL", focused && p.Field == 1) + "\n")
	b.WriteString(p.ImageInput + "\n")
	b.WriteString(Button{Label: "Add", Focused: focused && p.Field == 2}.View())

	return b.String()
}

// renderSplitForm renders the split-bill form for the selected friend.
func renderSplitForm(p SplitFormParams, focused bool, width int) string {
	var b strings.Builder
	contentWidth := width - 6

	b.WriteString(TitleStyle.Render("SPLIT A BILL WITH "+strings.ToUpper(p.FriendName)) + "\n")
	b.WriteString(divider(contentWidth) + "\n\n")

	b.WriteString(fieldLabel("Bill value", focused && p.Field == 0) + "\n")
	b.WriteString(p.BillInput + "\n\n")

	b.WriteString(fieldLabel("Your expense", focused && p.Field == 1) + "\n")
	b.WriteString(p.ExpenseInput + "\n\n")

	b.WriteString(LabelStyle.Render(p.FriendName+"'s expense") + "\n")
	b.WriteString(DisabledStyle.Render("  "+strconv.FormatFloat(p.FriendExpense, 'f', -1, 64)) + "\n\n")

	b.WriteString(fieldLabel("Who is paying the bill ?", focused && p.Field == 2) + "\n")
	b.WriteString(renderPayer(p.Payer, p.FriendName, focused && p.Field == 2) + "\n\n")

	b.WriteString(Button{Label: "Split Bill", Focused: focused && p.Field == 3}.View() + "\n")

	b.WriteString("\n" + divider(contentWidth) + "\n")
	b.WriteString(HelpStyle.Render("tab next • ←/→ payer • enter split • esc back"))

	style := BoxStyle
	if focused {
		style = FocusedBoxStyle
	}
	return wrapInBox(style, b.String(), width)
}

func renderPayer(payer form.Payer, friendName string, focused bool) string {
	options := []struct {
		payer form.Payer
		label string
	}{
		{form.PayerUser, "You"},
		{form.PayerFriend, friendName},
	}

	var parts []string
	for _, o := range options {
		if o.payer == payer {
			style := SelectedStyle
			if !focused {
				style = NameStyle
			}
			parts = append(parts, style.Render("("+SymbolSelected+") "+o.label))
		} else {
			parts = append(parts, NormalStyle.Render("( ) "+o.label))
		}
	}
	return "  " + strings.Join(parts, "   ")
}

// renderHelp renders the help screen.
func renderHelp(p RenderParams) string {
	var b strings.Builder
	contentWidth := p.Width - 6

	b.WriteString(HeaderStyle.Render("HELP") + "\n")
	b.WriteString(divider(contentWidth) + "\n\n")

	for i, section := range p.HelpSections {
		b.WriteString(NameStyle.Render(section.Title) + "\n")
		b.WriteString(DividerStyle.Render(strings.Repeat(SymbolDivider, 40)) + "\n")
		for _, binding := range section.Bindings {
			// Pad keys to 12 chars for alignment
			keys := binding.Keys
			if len(keys) < 12 {
				keys = keys + strings.Repeat(" ", 12-len(keys))
			}
			b.WriteString(ImageStyle.Render("  "+keys) + " " + binding.Desc + "\n")
		}
		if i < len(p.HelpSections)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n" + divider(contentWidth) + "\n")
	b.WriteString(HelpStyle.Render("Press any key to close"))

	return wrapInBox(FocusedBoxStyle, b.String(), p.Width)
}

func footerHelp(p RenderParams, width int) string {
	switch {
	case p.State == StateFilter:
		return "enter keep • esc clear"
	case p.Focus == FocusAddForm:
		return "tab next • enter add • esc close"
	default:
		return compactHelp(
			"enter select • a add friend • tab switch • / filter • ? help • q quit",
			"enter•a•tab•/•?•q",
			width,
		)
	}
}

func fieldLabel(label string, active bool) string {
	if active {
		return ActiveLabelStyle.Render(SymbolCursor + " " + label)
	}
	return LabelStyle.Render("  " + label)
}

func isSelected(sel ledger.Selection, id string) bool {
	selID, ok := sel.ID()
	return ok && selID == id
}

func divider(width int) string {
	if width < 1 {
		width = 1
	}
	return DividerStyle.Render(strings.Repeat(SymbolDivider, width))
}

// truncate cuts s to width terminal cells, marking the cut with "...".
func truncate(s string, width int) string {
	if width <= 3 {
		return s
	}
	return ansi.Truncate(s, width, "...")
}

// wrapInBox wraps content in a box.
func wrapInBox(style lipgloss.Style, content string, width int) string {
	boxWidth := width - 2
	if boxWidth < MinWidth-2 {
		boxWidth = MinWidth - 2
	}
	return style.Width(boxWidth).Render(content)
}

// compactHelp returns a shortened help string when full does not fit.
func compactHelp(full, compact string, width int) string {
	if width >= lipgloss.Width(full) {
		return full
	}
	return compact
}
