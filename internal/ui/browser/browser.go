// Package browser is the interactive register list: one row per register
// with a terse preview, and a detail pane with the full description. Rows
// stay in sync with the store through its change events.
package browser

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/casier/internal/cachemanager"
	"github.com/zjrosen/casier/internal/dispatch"
	"github.com/zjrosen/casier/internal/keys"
	"github.com/zjrosen/casier/internal/log"
	"github.com/zjrosen/casier/internal/ops"
	"github.com/zjrosen/casier/internal/pubsub"
	"github.com/zjrosen/casier/internal/register"
	"github.com/zjrosen/casier/internal/store"
	"github.com/zjrosen/casier/internal/ui/styles"
)

const defaultCacheTTL = 5 * time.Minute

// Config wires the browser to its collaborators.
type Config struct {
	Store      *store.Store
	Dispatcher *dispatch.Dispatcher
	Ops        *ops.Service

	// Keys defaults to keys.DefaultKeyMap when zero.
	Keys *keys.KeyMap

	ShowStatusBar bool
	StartVerbose  bool

	// ReadOnly disables the delete binding.
	ReadOnly bool

	// CacheDisabled turns off description caching.
	CacheDisabled bool
	// CacheTTL defaults to five minutes when zero.
	CacheTTL time.Duration
}

// renderRequest carries a register through the read-through cache loader.
type renderRequest struct {
	reg     register.Register
	verbose bool
}

// Model is the Bubble Tea model for the register browser.
type Model struct {
	store    *store.Store
	disp     *dispatch.Dispatcher
	ops      *ops.Service
	keymap   keys.KeyMap
	listener *pubsub.ContinuousListener[store.Change]
	cancel   context.CancelFunc

	cache *cachemanager.ReadThroughCache[string, string, renderRequest]
	ttl   time.Duration

	help help.Model
	rows []register.Key

	selected   int
	verbose    bool
	showStatus bool
	showHelp   bool
	readOnly   bool
	width      int
	height     int
	status     string
}

// New creates a browser over the given store.
func New(cfg Config) Model {
	keymap := keys.DefaultKeyMap()
	if cfg.Keys != nil {
		keymap = *cfg.Keys
	}

	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	manager := cachemanager.NewInMemoryCacheManager[string, string](
		"register-descriptions",
		cachemanager.DefaultExpiration,
		cachemanager.DefaultCleanupInterval,
	)

	disp := cfg.Dispatcher
	cache := cachemanager.NewReadThroughCache(manager,
		func(ctx context.Context, req renderRequest) (string, error) {
			return disp.Print(req.reg, req.verbose), nil
		},
		cfg.CacheDisabled,
	)

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		store:      cfg.Store,
		disp:       disp,
		ops:        cfg.Ops,
		keymap:     keymap,
		listener:   pubsub.NewContinuousListener(ctx, cfg.Store.Events()),
		cancel:     cancel,
		cache:      cache,
		ttl:        ttl,
		help:       help.New(),
		verbose:    cfg.StartVerbose,
		showStatus: cfg.ShowStatusBar,
		readOnly:   cfg.ReadOnly,
	}
	m.refreshRows()
	return m
}

// Init starts the store event listener.
func (m Model) Init() tea.Cmd {
	return m.listener.Listen()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Zero-size messages are render nudges, not real resizes
		if msg.Width > 0 {
			m.width = msg.Width
			m.height = msg.Height
			m.help.Width = msg.Width
		}
		return m, nil

	case pubsub.Event[store.Change]:
		next, cmd := m.handleChange(msg)
		return next, cmd

	case tea.KeyMsg:
		next, cmd := m.handleKey(msg)
		return next, cmd
	}
	return m, nil
}

func (m Model) handleChange(ev pubsub.Event[store.Change]) (Model, tea.Cmd) {
	ctx := context.Background()
	switch ev.Type {
	case pubsub.ClearedEvent:
		m.cache.InvalidateAll(ctx)
	default:
		m.cache.Invalidate(ctx,
			cacheKey(ev.Payload.Key, false),
			cacheKey(ev.Payload.Key, true),
		)
	}
	m.refreshRows()
	return m, m.listener.Listen()
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	km := m.keymap
	switch {
	case key.Matches(msg, km.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, km.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, km.Down):
		if m.selected < len(m.rows)-1 {
			m.selected++
		}
	case key.Matches(msg, km.Top):
		m.selected = 0
	case key.Matches(msg, km.Bot):
		if len(m.rows) > 0 {
			m.selected = len(m.rows) - 1
		}

	case key.Matches(msg, km.Verbose):
		m.verbose = !m.verbose
	case key.Matches(msg, km.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, km.ToggleStatus):
		m.showStatus = !m.showStatus
	case key.Matches(msg, km.Escape):
		m.status = ""

	case key.Matches(msg, km.Jump):
		return m.jumpSelected(), nil
	case key.Matches(msg, km.Insert):
		return m.insertSelected(), nil
	case key.Matches(msg, km.Increment):
		return m.incrementSelected(), nil
	case key.Matches(msg, km.Delete):
		return m.deleteSelected(), nil
	}
	return m, nil
}

func (m Model) jumpSelected() Model {
	r, ok := m.selectedRegister()
	if !ok {
		return m
	}
	if err := m.disp.Restore(context.Background(), r); err != nil {
		m.status = err.Error()
		log.Warn(log.CatUI, "restore failed", "key", r.Key(), "error", err)
		return m
	}
	m.status = fmt.Sprintf("restored register %s", r.Key())
	return m
}

func (m Model) insertSelected() Model {
	r, ok := m.selectedRegister()
	if !ok {
		return m
	}
	payload, err := m.disp.Insert(context.Background(), r)
	if err != nil {
		m.status = err.Error()
		return m
	}
	m.status = fmt.Sprintf("inserted %d characters", len(payload))
	return m
}

func (m Model) incrementSelected() Model {
	r, ok := m.selectedRegister()
	if !ok {
		return m
	}
	if err := m.ops.Increment(context.Background(), r.Key(), 1); err != nil {
		m.status = err.Error()
		return m
	}
	m.status = fmt.Sprintf("incremented register %s", r.Key())
	return m
}

func (m Model) deleteSelected() Model {
	if m.readOnly {
		m.status = "registers are read-only"
		return m
	}
	r, ok := m.selectedRegister()
	if !ok {
		return m
	}
	m.store.Delete(r.Key())
	m.status = fmt.Sprintf("deleted register %s", r.Key())
	// The change event refreshes too, but not until the listener fires;
	// refresh now so the row disappears on this frame.
	m.refreshRows()
	return m
}

func (m Model) selectedRegister() (register.Register, bool) {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return register.Register{}, false
	}
	return m.store.Get(m.rows[m.selected])
}

// refreshRows rebuilds the sorted key list, clamping the selection.
func (m *Model) refreshRows() {
	keys := m.store.Keys()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	m.rows = keys
	if m.selected >= len(keys) {
		m.selected = len(keys) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// SelectedKey returns the key under the cursor, empty when the store is
// empty.
func (m Model) SelectedKey() register.Key {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return ""
	}
	return m.rows[m.selected]
}

// View renders the browser.
func (m Model) View() string {
	var b strings.Builder

	title := styles.SelectedStyle.Render("Registers")
	b.WriteString(title)
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("no registers"))
		b.WriteString("\n")
	}

	ctx := context.Background()
	for i, k := range m.rows {
		r, ok := m.store.Get(k)
		if !ok {
			continue
		}

		desc, _ := m.cache.Get(ctx, cacheKey(k, false), renderRequest{reg: r}, m.ttl)
		kind := r.Value().Kind().String()
		// Pad before styling so ANSI codes don't skew the column width
		kindTag := lipgloss.NewStyle().
			Foreground(styles.KindColor(kind)).
			Render(fmt.Sprintf("%-13s", kind))

		line := fmt.Sprintf("%s  %s %s", styles.KeyStyle.Render(string(k)), kindTag, desc)
		if i == m.selected {
			line = styles.SelectionIndicatorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.verbose {
		if detail := m.detailView(ctx); detail != "" {
			b.WriteString("\n")
			b.WriteString(detail)
			b.WriteString("\n")
		}
	}

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.help.FullHelpView(m.keymap.FullHelp()))
		b.WriteString("\n")
	}

	if m.showStatus {
		b.WriteString("\n")
		status := m.status
		if status == "" {
			status = fmt.Sprintf("%d registers · ? for help", len(m.rows))
		}
		b.WriteString(styles.StatusBarStyle.Render(status))
	}

	return b.String()
}

// detailView renders the verbose description of the selected register.
func (m Model) detailView(ctx context.Context) string {
	r, ok := m.selectedRegister()
	if !ok {
		return ""
	}

	desc, _ := m.cache.Get(ctx, cacheKey(r.Key(), true), renderRequest{reg: r, verbose: true}, m.ttl)

	width := m.width - 4
	if width < 20 {
		width = 76
	}
	return styles.DetailBorderStyle.Render(wordwrap.String(desc, width))
}

// Close cancels the store subscription. The quit key does this on its own;
// Close covers embedding programs that tear the model down directly.
func (m Model) Close() {
	m.cancel()
}

func cacheKey(key register.Key, verbose bool) string {
	if verbose {
		return string(key) + "\x00v"
	}
	return string(key) + "\x00t"
}
