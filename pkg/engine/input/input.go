package input

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"
)

// Reader decodes terminal bytes (raw mode) into RawInput codes.
type Reader struct {
	r   *bufio.Reader
	now func() time.Time
}

// NewReader wraps r, typically os.Stdin after term.MakeRaw.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r), now: time.Now}
}

// Next blocks for the next key and returns its code.
func (r *Reader) Next() (RawInput, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return RawInput{}, err
	}
	code := r.decode(b)
	return RawInput{Device: DeviceTerminal, Code: code, Timestamp: r.now()}, nil
}

func (r *Reader) decode(b byte) string {
	switch {
	case b == 0x1b:
		return r.escape()
	case b == 3:
		return "ctrl_c"
	case b == 127 || b == 8:
		return "backspace"
	case b == '\r' || b == '\n':
		return "enter"
	case b == '\t':
		return "tab"
	case b >= 32 && b < 127:
		return string(b)
	}
	return ""
}

// escape reads the rest of an escape sequence. A lone ESC arrives with
// nothing buffered behind it.
func (r *Reader) escape() string {
	if r.r.Buffered() == 0 {
		return "escape"
	}
	b2, err := r.r.ReadByte()
	if err != nil {
		return "escape"
	}
	// Handle both CSI sequences (ESC [) and SS3 sequences (ESC O)
	if b2 != '[' && b2 != 'O' {
		return "escape"
	}
	b3, err := r.r.ReadByte()
	if err != nil {
		return ""
	}
	switch b3 {
	case 'A':
		return "arrow_up"
	case 'B':
		return "arrow_down"
	case 'C':
		return "arrow_right"
	case 'D':
		return "arrow_left"
	case 'P':
		return "f1"
	case '3':
		// ESC [ 3 ~
		if t, err := r.r.ReadByte(); err == nil && t == '~' {
			return "delete"
		}
	case '2':
		// ESC [ 2 1 ~
		if d, err := r.r.ReadByte(); err == nil && d == '1' {
			if t, err := r.r.ReadByte(); err == nil && t == '~' {
				return "f10"
			}
		}
	}
	// Unknown escape sequence - discard it
	return ""
}

// ReadKeys forwards keys from r to out until r fails or ctx is done. It is
// meant to run in its own goroutine; io.EOF ends it without error.
func ReadKeys(ctx context.Context, r *Reader, out chan<- RawInput) error {
	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if ev.Code == "" {
			continue
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
