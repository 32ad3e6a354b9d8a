// Package memory is an in-memory implementation of the host services: a few
// plain-text buffers, a cursor, window/frame snapshots, and scriptable
// reopen confirmation. The casier binary runs the browser on top of it, and
// the core's tests use it as their editing surface.
package memory

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/zjrosen/casier/internal/host"
)

// marker is the host's position marker. A destroyed buffer leaves buf nil,
// which is what "unbound" means here.
type marker struct {
	buf *buffer
	pos int
}

type buffer struct {
	id      host.SourceID
	path    string // empty for non-file buffers
	content []rune
	markers []*marker
}

// Host implements host.Editor, host.Windows and host.Files over in-memory
// buffers.
type Host struct {
	buffers map[host.SourceID]*buffer
	current *buffer
	point   int
	nextID  int

	// ConfirmFunc answers reopen confirmations. Defaults to accepting.
	ConfirmFunc func(path string) bool

	// files maps paths to contents served by Open for paths that are not
	// already open, so tests and the demo need no disk.
	files map[string]string
}

// New creates a host with a single empty scratch buffer.
func New() *Host {
	h := &Host{
		buffers: make(map[host.SourceID]*buffer),
		files:   make(map[string]string),
	}
	h.current = h.addBuffer("scratch", "", "")
	return h
}

// Services bundles the host for handing to the core.
func (h *Host) Services() host.Services {
	return host.Services{Editor: h, Windows: h, Files: h}
}

func (h *Host) addBuffer(name, path, content string) *buffer {
	h.nextID++
	id := host.SourceID(name)
	if _, taken := h.buffers[id]; taken {
		id = host.SourceID(fmt.Sprintf("%s<%d>", name, h.nextID))
	}
	b := &buffer{id: id, path: path, content: []rune(content)}
	h.buffers[id] = b
	return b
}

// NewBuffer creates a named buffer with the given content and makes it
// current. Returns its source id.
func (h *Host) NewBuffer(name, content string) host.SourceID {
	b := h.addBuffer(name, "", content)
	h.current = b
	h.point = 0
	return b.id
}

// SetFileContents registers what Open serves for a path.
func (h *Host) SetFileContents(path, content string) {
	h.files[path] = content
}

// Destroy removes a buffer and unbinds every marker pointing into it.
// The host calls the core's swap-out operation before destroying a buffer
// it knows registers point into.
func (h *Host) Destroy(id host.SourceID) {
	b, ok := h.buffers[id]
	if !ok {
		return
	}
	for _, m := range b.markers {
		m.buf = nil
	}
	delete(h.buffers, id)
	if h.current == b {
		for _, other := range h.buffers {
			h.current = other
			break
		}
		if h.current == b {
			h.current = h.addBuffer("scratch", "", "")
		}
		h.point = 0
	}
}

// CurrentSource returns the id of the current buffer.
func (h *Host) CurrentSource() host.SourceID { return h.current.id }

// Point returns the cursor offset in the current buffer.
func (h *Host) Point() int { return h.point }

// Text returns a buffer's content, empty when the buffer is gone.
func (h *Host) Text(id host.SourceID) string {
	if b, ok := h.buffers[id]; ok {
		return string(b.content)
	}
	return ""
}

// MarkerAt returns a marker bound to an offset in a buffer.
func (h *Host) MarkerAt(id host.SourceID, pos int) host.Marker {
	b, ok := h.buffers[id]
	if !ok {
		return &marker{}
	}
	m := &marker{buf: b, pos: clamp(pos, 0, len(b.content))}
	b.markers = append(b.markers, m)
	return m
}

// --- host.Markers ---

func (h *Host) IsBound(m host.Marker) bool {
	mk, ok := m.(*marker)
	return ok && mk.buf != nil
}

func (h *Host) Source(m host.Marker) (host.SourceID, bool) {
	mk, ok := m.(*marker)
	if !ok || mk.buf == nil {
		return "", false
	}
	return mk.buf.id, true
}

func (h *Host) Position(m host.Marker) int {
	if mk, ok := m.(*marker); ok {
		return mk.pos
	}
	return 0
}

// --- host.Editor ---

func (h *Host) CurrentPosition() host.Marker {
	m := &marker{buf: h.current, pos: h.point}
	h.current.markers = append(h.current.markers, m)
	return m
}

func (h *Host) SwitchToSource(id host.SourceID) {
	if b, ok := h.buffers[id]; ok {
		h.current = b
		h.point = clamp(h.point, 0, len(b.content))
	}
}

func (h *Host) MoveTo(offset int) {
	h.point = clamp(offset, 0, len(h.current.content))
}

func (h *Host) ExtractRegion(start, end host.Marker) string {
	b, lo, hi := h.region(start, end)
	if b == nil {
		return ""
	}
	return string(b.content[lo:hi])
}

func (h *Host) DeleteRegion(start, end host.Marker) {
	b, lo, hi := h.region(start, end)
	if b == nil {
		return
	}
	b.content = append(b.content[:lo], b.content[hi:]...)
	if h.current == b {
		h.point = clamp(h.point, 0, len(b.content))
	}
}

func (h *Host) ExtractRectangle(start, end host.Marker, destructive bool) []string {
	b, lo, hi := h.region(start, end)
	if b == nil {
		return nil
	}

	lines := strings.Split(string(b.content), "\n")
	startRow, startCol := rowCol(lines, lo)
	endRow, endCol := rowCol(lines, hi)
	left, right := min(startCol, endCol), max(startCol, endCol)

	block := make([]string, 0, endRow-startRow+1)
	for row := startRow; row <= endRow && row < len(lines); row++ {
		line := []rune(lines[row])
		lo := clamp(left, 0, len(line))
		hi := clamp(right, 0, len(line))
		segment := string(line[lo:hi])
		// Pad short lines so the block stays rectangular.
		segment += strings.Repeat(" ", right-left-len([]rune(segment)))
		block = append(block, segment)
		if destructive {
			lines[row] = string(line[:lo]) + string(line[hi:])
		}
	}
	if destructive {
		b.content = []rune(strings.Join(lines, "\n"))
		if h.current == b {
			h.point = clamp(h.point, 0, len(b.content))
		}
	}
	return block
}

func (h *Host) InsertText(text string) {
	b := h.current
	insert := []rune(text)
	b.content = append(b.content[:h.point], append(insert, b.content[h.point:]...)...)
	h.point += len(insert)
}

func (h *Host) InsertRectangle(lines []string) {
	if len(lines) == 0 {
		return
	}
	b := h.current
	all := strings.Split(string(b.content), "\n")
	row, col := rowCol(all, h.point)

	for i, seg := range lines {
		for row+i >= len(all) {
			all = append(all, "")
		}
		line := []rune(all[row+i])
		for len(line) < col {
			line = append(line, ' ')
		}
		all[row+i] = string(line[:col]) + seg + string(line[col:])
	}
	b.content = []rune(strings.Join(all, "\n"))
	h.point += len([]rune(lines[0]))
}

func (h *Host) ScanNumberAtPoint() (int, bool) {
	content := h.current.content
	i := h.point
	for i < len(content) && !unicode.IsDigit(content[i]) {
		i++
	}
	if i == len(content) {
		return 0, false
	}
	n := 0
	for i < len(content) && unicode.IsDigit(content[i]) {
		n = n*10 + int(content[i]-'0')
		i++
	}
	return n, true
}

// --- host.Windows ---

type layout struct {
	current host.SourceID
	point   int
}

func (h *Host) CurrentWindowLayout() host.WindowLayout {
	return layout{current: h.current.id, point: h.point}
}

func (h *Host) CurrentFrameLayout() host.FrameLayout {
	return layout{current: h.current.id, point: h.point}
}

func (h *Host) ApplyWindowLayout(l host.WindowLayout) {
	h.applyLayout(l)
}

func (h *Host) ApplyFrameLayout(l host.FrameLayout, keepOthers bool) {
	h.applyLayout(l)
}

func (h *Host) applyLayout(l any) {
	snap, ok := l.(layout)
	if !ok {
		return
	}
	if b, found := h.buffers[snap.current]; found {
		h.current = b
		h.point = clamp(snap.point, 0, len(b.content))
	}
}

// --- host.Files ---

func (h *Host) Open(path string) error {
	if id, ok := h.FindOpen(path); ok {
		h.SwitchToSource(id)
		h.point = 0
		return nil
	}
	content, known := h.files[path]
	if !known {
		return fmt.Errorf("no such file: %s", path)
	}
	b := h.addBuffer(path, path, content)
	h.current = b
	h.point = 0
	return nil
}

func (h *Host) FindOpen(path string) (host.SourceID, bool) {
	for id, b := range h.buffers {
		if b.path == path {
			return id, true
		}
	}
	return "", false
}

func (h *Host) ConfirmReopen(path string) bool {
	if h.ConfirmFunc != nil {
		return h.ConfirmFunc(path)
	}
	return true
}

// --- helpers ---

func (h *Host) region(start, end host.Marker) (*buffer, int, int) {
	a, okA := start.(*marker)
	b, okB := end.(*marker)
	if !okA || !okB || a.buf == nil || a.buf != b.buf {
		return nil, 0, 0
	}
	lo, hi := a.pos, b.pos
	if lo > hi {
		lo, hi = hi, lo
	}
	lo = clamp(lo, 0, len(a.buf.content))
	hi = clamp(hi, 0, len(a.buf.content))
	return a.buf, lo, hi
}

// rowCol converts a rune offset into (row, column) against split lines.
func rowCol(lines []string, offset int) (int, int) {
	for row, line := range lines {
		length := len([]rune(line))
		if offset <= length {
			return row, offset
		}
		offset -= length + 1 // the newline
	}
	if len(lines) == 0 {
		return 0, 0
	}
	return len(lines) - 1, len([]rune(lines[len(lines)-1]))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
