package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/henri123lemoine/evenup/internal/avatar"
	"github.com/henri123lemoine/evenup/internal/config"
	"github.com/henri123lemoine/evenup/internal/debug"
	"github.com/henri123lemoine/evenup/internal/form"
	"github.com/henri123lemoine/evenup/internal/ledger"
	"github.com/henri123lemoine/evenup/internal/ui"
)

// State represents the current UI state.
type State int

const (
	StateBrowse State = iota
	StateFilter
	StateHelp
)

// Focus is the pane receiving keys while browsing.
type Focus int

const (
	FocusList Focus = iota
	FocusAddForm
	FocusSplitForm
)

// Add-friend form fields.
const (
	addFieldName = iota
	addFieldImage
	addFieldButton
	addFieldCount
)

// Split form fields. The friend's expense is derived and never focused.
const (
	splitFieldBill = iota
	splitFieldExpense
	splitFieldPayer
	splitFieldButton
	splitFieldCount
)

// statusTimeout is how long a status line stays on screen.
const statusTimeout = 3 * time.Second

// Model is the main application model.
type Model struct {
	// Configuration
	config *config.Config

	// Data. Only dispatch replaces it.
	ledger  ledger.State
	visible []int // indexes into ledger.Friends after filtering
	cursor  int

	// State
	state State
	focus Focus

	// Add-friend form session, nil while the panel is closed
	addForm    *form.AddFriend
	addField   int
	nameInput  textinput.Model
	imageInput textinput.Model

	// Split form, nil while nothing is selected
	splitForm    *form.Split
	splitField   int
	billInput    textinput.Model
	expenseInput textinput.Model

	// Filter
	filterInput textinput.Model

	// Sources for new friends
	ids     form.IDSource
	avatars *avatar.Generator

	// UI
	width     int
	height    int
	keys      KeyMap
	status    string
	statusSeq int

	// Exit behavior
	shouldQuit bool
}

// New creates a new Model over an initial ledger state.
func New(cfg *config.Config, initial ledger.State) Model {
	nameInput := textinput.New()
	nameInput.Placeholder = "name"
	nameInput.CharLimit = 50

	imageInput := textinput.New()
	imageInput.CharLimit = 200

	billInput := textinput.New()
	billInput.Placeholder = "0"
	billInput.CharLimit = 15

	expenseInput := textinput.New()
	expenseInput.Placeholder = "0"
	expenseInput.CharLimit = 15

	filterInput := textinput.New()
	filterInput.Placeholder = "filter..."
	filterInput.CharLimit = 50

	m := Model{
		config:       cfg,
		ledger:       initial,
		state:        StateBrowse,
		focus:        FocusList,
		nameInput:    nameInput,
		imageInput:   imageInput,
		billInput:    billInput,
		expenseInput: expenseInput,
		filterInput:  filterInput,
		ids:          form.NewID,
		avatars:      avatar.New(cfg.Avatar.URLTemplate, cfg.Avatar.MaxSize),
		keys:         KeyMapFromConfig(&cfg.Keys),
	}
	m.sync()
	m.applyFilter()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.shouldQuit = true
			return m, tea.Quit
		}
		// Letters belong to the inputs while a form has focus
		if key.Matches(msg, m.keys.Quit) && m.state == StateBrowse && m.focus == FocusList {
			m.shouldQuit = true
			return m, tea.Quit
		}
		return m.handleKeyPress(msg)

	case StatusClearedMsg:
		if msg.Seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	// Cursor blink and other input-internal messages
	return m.updateFocusedInput(msg)
}

// handleKeyPress handles key presses based on current state.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateHelp:
		return m.handleHelpKeys(msg)
	case StateFilter:
		return m.handleFilterKeys(msg)
	}

	switch m.focus {
	case FocusAddForm:
		return m.handleAddFormKeys(msg)
	case FocusSplitForm:
		return m.handleSplitFormKeys(msg)
	default:
		return m.handleListKeys(msg)
	}
}

// handleListKeys handles key presses in the friend list.
func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = len(m.visible) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Select):
		f, ok := m.cursorFriend()
		if !ok {
			return m, nil
		}
		return m.selectFriend(f.ID)
	case key.Matches(msg, m.keys.Add):
		return m.togglePanel()
	case key.Matches(msg, m.keys.NextPane):
		return m.nextPane()
	case key.Matches(msg, m.keys.Filter):
		m.state = StateFilter
		return m, m.filterInput.Focus()
	case key.Matches(msg, m.keys.Help):
		m.state = StateHelp
	case key.Matches(msg, m.keys.Cancel):
		if m.filterInput.Value() != "" {
			m.filterInput.Reset()
			m.applyFilter()
		}
	}
	return m, nil
}

// handleHelpKeys handles key presses in the help view.
func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	m.state = StateBrowse
	return m, nil
}

// handleFilterKeys handles key presses in filter mode.
func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = StateBrowse
		m.filterInput.Reset()
		m.filterInput.Blur()
		m.applyFilter()
		return m, nil
	case tea.KeyEnter:
		m.state = StateBrowse
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

// handleAddFormKeys handles key presses in the add-friend form.
func (m Model) handleAddFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		// Same as the Close button
		return m.togglePanel()
	case key.Matches(msg, m.keys.Submit):
		return m.submitAddForm()
	case m.addField == addFieldButton && key.Matches(msg, m.keys.Select):
		return m.submitAddForm()
	case m.addField == addFieldButton && key.Matches(msg, m.keys.NextPane):
		// Past the last field, the panel stays open
		return m.nextPane()
	case key.Matches(msg, m.keys.NextField):
		m.addField = (m.addField + 1) % addFieldCount
		return m, m.focusInputs()
	case key.Matches(msg, m.keys.PrevField):
		m.addField = (m.addField + addFieldCount - 1) % addFieldCount
		return m, m.focusInputs()
	}

	var cmd tea.Cmd
	switch m.addField {
	case addFieldName:
		m.nameInput, cmd = m.nameInput.Update(msg)
		m.addForm.Name = m.nameInput.Value()
	case addFieldImage:
		m.imageInput, cmd = m.imageInput.Update(msg)
		m.addForm.Image = m.imageInput.Value()
	}
	return m, cmd
}

// handleSplitFormKeys handles key presses in the split-bill form.
func (m Model) handleSplitFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.focus = FocusList
		return m, m.focusInputs()
	case key.Matches(msg, m.keys.Submit):
		return m.submitSplitForm()
	case m.splitField == splitFieldButton && key.Matches(msg, m.keys.Select):
		return m.submitSplitForm()
	case m.splitField == splitFieldButton && key.Matches(msg, m.keys.NextPane):
		return m.nextPane()
	case m.splitField == splitFieldPayer && key.Matches(msg, m.keys.Payer):
		m.splitForm.Payer = m.splitForm.Payer.Other()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.splitField = (m.splitField + 1) % splitFieldCount
		return m, m.focusInputs()
	case key.Matches(msg, m.keys.PrevField):
		m.splitField = (m.splitField + splitFieldCount - 1) % splitFieldCount
		return m, m.focusInputs()
	}

	var cmd tea.Cmd
	switch m.splitField {
	case splitFieldBill:
		prev := m.billInput.Value()
		m.billInput, cmd = m.billInput.Update(msg)
		if m.billInput.Value() != prev && !m.splitForm.SetBill(m.billInput.Value()) {
			m.billInput.SetValue(prev)
		}
	case splitFieldExpense:
		prev := m.expenseInput.Value()
		m.expenseInput, cmd = m.expenseInput.Update(msg)
		if m.expenseInput.Value() != prev && !m.splitForm.SetExpense(m.expenseInput.Value()) {
			m.expenseInput.SetValue(prev)
		}
	}
	return m, cmd
}

// togglePanel is the Add Friend / Close button.
func (m Model) togglePanel() (tea.Model, tea.Cmd) {
	m.dispatch(ledger.TogglePanel{})
	if m.ledger.PanelOpen {
		m.focus = FocusAddForm
		m.addField = addFieldName
	}
	return m, m.focusInputs()
}

// selectFriend is a row's Select / Close button.
func (m Model) selectFriend(id string) (tea.Model, tea.Cmd) {
	m.dispatch(ledger.SelectFriend{ID: id})
	if m.splitForm != nil {
		m.focus = FocusSplitForm
		m.splitField = splitFieldBill
	}
	return m, m.focusInputs()
}

// submitAddForm is the add-friend form's Add button.
func (m Model) submitAddForm() (tea.Model, tea.Cmd) {
	friend, ok := m.addForm.Submit()
	if !ok {
		return m, nil
	}
	m.nameInput.SetValue(m.addForm.Name)
	m.imageInput.SetValue(m.addForm.Image)

	if !m.dispatch(ledger.AddFriend{Friend: friend}) {
		return m, nil
	}
	return m, tea.Batch(m.focusInputs(), m.setStatus("Added "+friend.Name))
}

// submitSplitForm is the split form's Split Bill button.
func (m Model) submitSplitForm() (tea.Model, tea.Cmd) {
	f, ok := m.ledger.Selected()
	if !ok {
		return m, nil
	}
	bill := m.splitForm.Bill()

	delta, ok := m.splitForm.Submit()
	if !ok {
		return m, nil
	}
	m.billInput.Reset()
	m.expenseInput.Reset()
	m.splitField = splitFieldBill

	if !m.dispatch(ledger.ApplySplit{Delta: delta}) {
		return m, m.focusInputs()
	}
	status := fmt.Sprintf("Split %s with %s", ui.FormatAmount(m.config.UI.Currency, bill), f.Name)
	return m, tea.Batch(m.focusInputs(), m.setStatus(status))
}

// nextPane moves focus to the next visible pane.
func (m Model) nextPane() (tea.Model, tea.Cmd) {
	switch {
	case m.focus == FocusList && m.addForm != nil:
		m.focus = FocusAddForm
	case m.focus != FocusSplitForm && m.splitForm != nil:
		m.focus = FocusSplitForm
	default:
		m.focus = FocusList
	}
	return m, m.focusInputs()
}

// dispatch applies an action to the ledger and brings the form sessions
// in line with the result. It reports whether the action was accepted.
func (m *Model) dispatch(a ledger.Action) bool {
	defer debug.Timed(fmt.Sprintf("dispatch %T", a))()

	next, err := ledger.Apply(m.ledger, a)
	if err != nil {
		debug.Error("action rejected", err, "action", fmt.Sprintf("%T", a))
		return false
	}
	debug.Log("dispatch", "action", fmt.Sprintf("%T", a), "friends", len(next.Friends), "panel_open", next.PanelOpen)

	m.ledger = next
	m.sync()
	m.applyFilter()
	return true
}

// sync starts or discards form sessions to match the ledger: the
// add-friend form lives while the panel is open, the split form while a
// friend is selected.
func (m *Model) sync() {
	switch {
	case m.ledger.PanelOpen && m.addForm == nil:
		m.addForm = form.NewAddFriend(m.ids, m.avatars)
		m.addField = addFieldName
		m.nameInput.SetValue(m.addForm.Name)
		m.imageInput.SetValue(m.addForm.Image)
		debug.Log("add form opened", "id", m.addForm.ID(), "image", m.addForm.Image)
	case !m.ledger.PanelOpen && m.addForm != nil:
		m.addForm = nil
		m.nameInput.Reset()
		m.imageInput.Reset()
		if m.focus == FocusAddForm {
			m.focus = FocusList
		}
	}

	_, selected := m.ledger.Selected()
	switch {
	case selected && m.splitForm == nil:
		m.splitForm = &form.Split{}
		m.splitField = splitFieldBill
		m.billInput.Reset()
		m.expenseInput.Reset()
	case !selected && m.splitForm != nil:
		m.splitForm = nil
		m.billInput.Reset()
		m.expenseInput.Reset()
		if m.focus == FocusSplitForm {
			m.focus = FocusList
		}
	}
}

// focusInputs focuses the text input under the current field and blurs
// every other one.
func (m *Model) focusInputs() tea.Cmd {
	m.nameInput.Blur()
	m.imageInput.Blur()
	m.billInput.Blur()
	m.expenseInput.Blur()

	var target *textinput.Model
	switch m.focus {
	case FocusAddForm:
		switch m.addField {
		case addFieldName:
			target = &m.nameInput
		case addFieldImage:
			target = &m.imageInput
		}
	case FocusSplitForm:
		switch m.splitField {
		case splitFieldBill:
			target = &m.billInput
		case splitFieldExpense:
			target = &m.expenseInput
		}
	}
	if target == nil {
		return nil
	}
	return target.Focus()
}

// updateFocusedInput forwards non-key messages to the focused input.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.state == StateFilter:
		m.filterInput, cmd = m.filterInput.Update(msg)
	case m.nameInput.Focused():
		m.nameInput, cmd = m.nameInput.Update(msg)
	case m.imageInput.Focused():
		m.imageInput, cmd = m.imageInput.Update(msg)
	case m.billInput.Focused():
		m.billInput, cmd = m.billInput.Update(msg)
	case m.expenseInput.Focused():
		m.expenseInput, cmd = m.expenseInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) setStatus(status string) tea.Cmd {
	m.statusSeq++
	m.status = status
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return StatusClearedMsg{Seq: seq}
	})
}

// friendSource implements fuzzy.Source for friend name matching.
type friendSource []ledger.Friend

func (f friendSource) String(i int) string {
	return f[i].Name
}

func (f friendSource) Len() int {
	return len(f)
}

// applyFilter filters friends based on current filter input using fuzzy
// matching. Matches keep the list order.
func (m *Model) applyFilter() {
	filter := m.filterInput.Value()
	m.visible = make([]int, 0, len(m.ledger.Friends))
	if filter == "" {
		for i := range m.ledger.Friends {
			m.visible = append(m.visible, i)
		}
	} else {
		matches := fuzzy.FindFrom(filter, friendSource(m.ledger.Friends))
		matched := make(map[int]bool, len(matches))
		for _, match := range matches {
			matched[match.Index] = true
		}
		for i := range m.ledger.Friends {
			if matched[i] {
				m.visible = append(m.visible, i)
			}
		}
	}

	// Ensure cursor is in bounds
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) cursorFriend() (ledger.Friend, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return ledger.Friend{}, false
	}
	return m.ledger.Friends[m.visible[m.cursor]], true
}

func (m Model) visibleFriends() []ledger.Friend {
	friends := make([]ledger.Friend, 0, len(m.visible))
	for _, i := range m.visible {
		friends = append(friends, m.ledger.Friends[i])
	}
	return friends
}

// View renders the UI.
func (m Model) View() string {
	p := ui.RenderParams{
		State:        int(m.state),
		Focus:        int(m.focus),
		Friends:      m.visibleFriends(),
		Total:        len(m.ledger.Friends),
		Cursor:       m.cursor,
		Selection:    m.ledger.Selection,
		PanelOpen:    m.ledger.PanelOpen,
		Summary:      ledger.Summarize(m.ledger.Friends),
		Currency:     m.config.UI.Currency,
		ShowImages:   m.config.UI.ShowImages,
		ShowSummary:  m.config.UI.ShowSummary,
		Status:       m.status,
		FilterInput:  m.filterInput.View(),
		FilterValue:  m.filterInput.Value(),
		HelpSections: m.helpSections(),
		Width:        m.width,
		Height:       m.height,
	}

	if m.addForm != nil {
		p.AddForm = &ui.AddFormParams{
			NameInput:  m.nameInput.View(),
			ImageInput: m.imageInput.View(),
			Field:      m.addField,
		}
	}

	if f, ok := m.ledger.Selected(); ok && m.splitForm != nil {
		p.SplitForm = &ui.SplitFormParams{
			FriendName:    f.Name,
			BillInput:     m.billInput.View(),
			ExpenseInput:  m.expenseInput.View(),
			FriendExpense: m.splitForm.FriendExpense(),
			Payer:         m.splitForm.Payer,
			Field:         m.splitField,
		}
	}

	return ui.Render(p)
}

// helpSections builds the help screen from the active key bindings.
func (m Model) helpSections() []ui.HelpSection {
	section := func(title string, bindings ...key.Binding) ui.HelpSection {
		s := ui.HelpSection{Title: title}
		for _, b := range bindings {
			h := b.Help()
			s.Bindings = append(s.Bindings, ui.HelpBinding{Keys: h.Key, Desc: h.Desc})
		}
		return s
	}

	return []ui.HelpSection{
		section("Friends", m.keys.Up, m.keys.Down, m.keys.Home, m.keys.End, m.keys.Select, m.keys.Add, m.keys.Filter),
		section("Forms", m.keys.NextField, m.keys.PrevField, m.keys.Submit, m.keys.Payer, m.keys.Cancel),
		section("General", m.keys.NextPane, m.keys.Help, m.keys.Quit),
	}
}

// Ledger returns the current ledger state.
func (m Model) Ledger() ledger.State {
	return m.ledger
}

// ShouldQuit returns true if the app should quit.
func (m Model) ShouldQuit() bool {
	return m.shouldQuit
}
