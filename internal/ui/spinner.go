package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// Spinner shows progress on stdout while feeds download. It stays silent
// when stdout is not a terminal.
type Spinner struct {
	message string
	out     *os.File
	done    chan struct{}
	wg      sync.WaitGroup
	active  bool
}

func NewSpinner(message string) *Spinner {
	return &Spinner{message: message, out: os.Stdout}
}

func (s *Spinner) Start() {
	if !term.IsTerminal(int(s.out.Fd())) {
		return
	}
	s.active = true
	s.done = make(chan struct{})

	// Hide the cursor while spinning.
	fmt.Fprint(s.out, "\033[?25l")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		frame := 0
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				fmt.Fprintf(s.out, "\r%s %s", s.message, spinnerFrames[frame%len(spinnerFrames)])
				frame++
			}
		}
	}()
}

func (s *Spinner) Stop() {
	if !s.active {
		return
	}
	close(s.done)
	s.wg.Wait()
	s.active = false

	// Clear the line and restore the cursor.
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+2))
	fmt.Fprint(s.out, "\033[?25h")
}
