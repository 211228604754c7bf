package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// errIdleTimeout forces a logout when the session sits idle too long. The
// deadline is only ever checked between engine calls; an in-flight
// mutation is never interrupted.
var errIdleTimeout = errors.New("session idle timeout")

// prompter reads lines from a background goroutine so that reads while
// logged in can carry an idle deadline.
type prompter struct {
	lines   chan string
	done    chan struct{}
	timeout time.Duration
}

func newPrompter(r io.Reader, timeout time.Duration) *prompter {
	p := &prompter{
		lines:   make(chan string),
		done:    make(chan struct{}),
		timeout: timeout,
	}
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			p.lines <- scanner.Text()
		}
		close(p.done)
	}()
	return p
}

// read blocks for the next line with no deadline.
func (p *prompter) read(prompt string) (string, error) {
	fmt.Print(prompt)
	select {
	case line := <-p.lines:
		return strings.TrimSpace(line), nil
	case <-p.done:
		return "", io.EOF
	}
}

// readTimed blocks for the next line or gives up at the idle deadline.
func (p *prompter) readTimed(prompt string) (string, error) {
	fmt.Print(prompt)
	timer := time.NewTimer(p.timeout)
	defer timer.Stop()
	select {
	case line := <-p.lines:
		return strings.TrimSpace(line), nil
	case <-p.done:
		return "", io.EOF
	case <-timer.C:
		fmt.Println("\nSession timed out due to inactivity.")
		return "", errIdleTimeout
	}
}

// readNonEmpty re-prompts until the input is non-empty.
func (p *prompter) readNonEmpty(prompt string) (string, error) {
	for {
		s, err := p.readTimed(prompt)
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
		fmt.Println("A value is required.")
	}
}

// readDigits re-prompts until the input is digits only.
func (p *prompter) readDigits(prompt string) (string, error) {
	for {
		s, err := p.readNonEmpty(prompt)
		if err != nil {
			return "", err
		}
		if isDigits(s) {
			return s, nil
		}
		fmt.Println("Digits only, please.")
	}
}

// readAmount re-prompts until the input parses as a decimal amount.
func (p *prompter) readAmount(prompt string) (decimal.Decimal, error) {
	for {
		s, err := p.readNonEmpty(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		amount, perr := decimal.NewFromString(s)
		if perr == nil {
			return amount, nil
		}
		fmt.Println("Invalid amount.")
	}
}

// readInt re-prompts until the input parses as an integer.
func (p *prompter) readInt(prompt string) (int, error) {
	for {
		s, err := p.readNonEmpty(prompt)
		if err != nil {
			return 0, err
		}
		n, perr := strconv.Atoi(s)
		if perr == nil {
			return n, nil
		}
		fmt.Println("Invalid number.")
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
