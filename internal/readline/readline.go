// Package readline reads input lines, with raw-mode editing, history
// navigation and tab completion when stdin is a terminal.
package readline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"simplesh/internal/complete"
	"simplesh/internal/history"
)

// ErrInterrupt is returned when the user presses Ctrl-C at the prompt.
var ErrInterrupt = errors.New("interrupt")

type Manager struct {
	history   *history.Manager
	completer *complete.Completer // nil disables completion

	stdin   *os.File
	stdout  io.Writer
	scanner *bufio.Scanner
	isTerm  bool
}

func New(hist *history.Manager, completer *complete.Completer) *Manager {
	return &Manager{
		history:   hist,
		completer: completer,
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		scanner:   bufio.NewScanner(os.Stdin),
		isTerm:    term.IsTerminal(int(os.Stdin.Fd())),
	}
}

func (m *Manager) IsTerminal() bool {
	return m.isTerm
}

// ReadLine prompts and reads one line. On a terminal it runs the raw-mode
// editor; otherwise it degrades to plain buffered reads.
func (m *Manager) ReadLine(prompt string) (string, error) {
	if !m.isTerm {
		if !m.scanner.Scan() {
			if err := m.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return m.scanner.Text(), nil
	}

	fmt.Fprint(m.stdout, prompt)
	return m.edit(prompt)
}

type lineState struct {
	buf []rune
	pos int

	// history navigation: navIdx == len(entries) means the line being typed
	entries []string
	navIdx  int
	saved   []rune
}

func (m *Manager) edit(prompt string) (string, error) {
	fd := int(m.stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		// Terminal refused raw mode; degrade to buffered reads.
		if m.scanner.Scan() {
			return m.scanner.Text(), nil
		}
		return "", io.EOF
	}
	defer term.Restore(fd, oldState)

	st := &lineState{}
	if m.history != nil {
		st.entries = m.history.All()
	}
	st.navIdx = len(st.entries)

	var pending []byte
	var b [1]byte

	for {
		n, err := m.stdin.Read(b[:])
		if err != nil {
			return "", io.EOF
		}
		if n == 0 {
			continue
		}
		ch := b[0]

		// Continuation bytes of a multibyte rune.
		if len(pending) > 0 || ch >= 0x80 {
			pending = append(pending, ch)
			if !utf8.FullRune(pending) {
				continue
			}
			r, _ := utf8.DecodeRune(pending)
			pending = nil
			st.insert(r)
			m.redraw(prompt, st)
			continue
		}

		switch ch {
		case '\r', '\n':
			fmt.Fprint(m.stdout, "\r\n")
			return string(st.buf), nil

		case 0x03: // Ctrl-C
			fmt.Fprint(m.stdout, "^C\r\n")
			return "", ErrInterrupt

		case 0x04: // Ctrl-D
			if len(st.buf) == 0 {
				fmt.Fprint(m.stdout, "\r\n")
				return "", io.EOF
			}
			st.deleteAt()

		case 0x7f, 0x08: // Backspace
			st.backspace()

		case 0x15: // Ctrl-U
			st.buf = append([]rune{}, st.buf[st.pos:]...)
			st.pos = 0

		case 0x0c: // Ctrl-L
			fmt.Fprint(m.stdout, "\033[2J\033[H")

		case 0x01: // Ctrl-A
			st.pos = 0

		case 0x05: // Ctrl-E
			st.pos = len(st.buf)

		case '\t':
			m.complete(prompt, st)

		case 0x1b:
			m.escape(st)

		default:
			if ch >= 0x20 {
				st.insert(rune(ch))
			}
		}

		m.redraw(prompt, st)
	}
}

// escape consumes a CSI sequence: arrows, home/end, delete.
func (m *Manager) escape(st *lineState) {
	var seq [2]byte
	if _, err := m.stdin.Read(seq[:1]); err != nil || seq[0] != '[' {
		return
	}
	if _, err := m.stdin.Read(seq[1:]); err != nil {
		return
	}

	switch seq[1] {
	case 'A':
		st.historyUp()
	case 'B':
		st.historyDown()
	case 'C':
		if st.pos < len(st.buf) {
			st.pos++
		}
	case 'D':
		if st.pos > 0 {
			st.pos--
		}
	case 'H':
		st.pos = 0
	case 'F':
		st.pos = len(st.buf)
	case '3': // Delete is ESC [ 3 ~
		var tilde [1]byte
		m.stdin.Read(tilde[:])
		st.deleteAt()
	}
}

func (m *Manager) complete(prompt string, st *lineState) {
	if m.completer == nil {
		return
	}

	line := string(st.buf[:st.pos])
	word, matches := m.completer.Complete(line)

	switch len(matches) {
	case 0:
		return
	case 1:
		insert := matches[0]
		if !strings.HasSuffix(insert, "/") {
			insert += " "
		}
		head := []rune(line[:len(line)-len(word)] + insert)
		tail := st.buf[st.pos:]
		st.buf = append(head, tail...)
		st.pos = len(head)
	default:
		fmt.Fprint(m.stdout, "\r\n"+strings.Join(matches, "  ")+"\r\n")
	}
}

func (m *Manager) redraw(prompt string, st *lineState) {
	fmt.Fprint(m.stdout, "\r\033[K"+prompt+string(st.buf))
	if back := len(st.buf) - st.pos; back > 0 {
		fmt.Fprintf(m.stdout, "\033[%dD", back)
	}
}

func (st *lineState) insert(r rune) {
	st.buf = append(st.buf[:st.pos], append([]rune{r}, st.buf[st.pos:]...)...)
	st.pos++
}

func (st *lineState) backspace() {
	if st.pos == 0 {
		return
	}
	st.buf = append(st.buf[:st.pos-1], st.buf[st.pos:]...)
	st.pos--
}

func (st *lineState) deleteAt() {
	if st.pos >= len(st.buf) {
		return
	}
	st.buf = append(st.buf[:st.pos], st.buf[st.pos+1:]...)
}

func (st *lineState) historyUp() {
	if st.navIdx == 0 {
		return
	}
	if st.navIdx == len(st.entries) {
		st.saved = append([]rune{}, st.buf...)
	}
	st.navIdx--
	st.buf = []rune(st.entries[st.navIdx])
	st.pos = len(st.buf)
}

func (st *lineState) historyDown() {
	if st.navIdx >= len(st.entries) {
		return
	}
	st.navIdx++
	if st.navIdx == len(st.entries) {
		st.buf = append([]rune{}, st.saved...)
	} else {
		st.buf = []rune(st.entries[st.navIdx])
	}
	st.pos = len(st.buf)
}
