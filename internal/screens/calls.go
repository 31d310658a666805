package screens

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/voisa/voictl/internal/api"
)

// ErrMissingCallFields rejects a dial attempt before any network call when
// either endpoint is blank.
var ErrMissingCallFields = errors.New("a source number and a destination are required")

type CallsAPI interface {
	ActivePhoneNumbers(ctx context.Context) ([]api.PhoneNumber, error)
	Contacts(ctx context.Context) ([]api.Contact, error)
	MakeCall(ctx context.Context, fromNumberID, toNumber string) (api.CallRecord, error)
	CallHistory(ctx context.Context) ([]api.CallRecord, error)
	OutgoingCallHistory(ctx context.Context) ([]api.CallRecord, error)
	IncomingCallHistory(ctx context.Context) ([]api.CallRecord, error)
	CallHistoryByDateRange(ctx context.Context, start, end time.Time) ([]api.CallRecord, error)
}

// callState tracks the in-call flags and the duration counter. Mute and hold
// are local-only toggles: the backend exposes no corresponding request, so
// they never leave the terminal.
type callState struct {
	connected bool
	muted     bool
	onHold    bool
	seconds   int
}

// tick advances the duration counter by one second while the call is
// connected and not on hold.
func (c *callState) tick() {
	if c.connected && !c.onHold {
		c.seconds++
	}
}

// end terminates the call and resets every flag, returning the final
// duration for display.
func (c *callState) end() int {
	final := c.seconds
	c.connected = false
	c.muted = false
	c.onHold = false
	c.seconds = 0
	return final
}

type CallsScreen struct {
	api CallsAPI
	ui  *UI
}

func NewCallsScreen(c CallsAPI, ui *UI) *CallsScreen {
	return &CallsScreen{api: c, ui: ui}
}

// Call places a call and then runs the in-call loop: a one-second cadence
// drives the duration counter while commands from input toggle mute/hold or
// end the call. The ticker is torn down whenever the call is held or ends,
// and on context cancellation; nothing keeps ticking after the screen exits.
func (s *CallsScreen) Call(ctx context.Context, fromNumberID, toNumber string, input io.Reader) error {
	if fromNumberID == "" || toNumber == "" {
		s.ui.NotifyError("please fill in all fields")
		return ErrMissingCallFields
	}

	if _, err := s.api.MakeCall(ctx, fromNumberID, toNumber); err != nil {
		s.ui.NotifyError("failed to initiate call: %v", err)
		return err
	}
	s.ui.Notify("Call connected to %s.", toNumber)
	s.ui.Printf("In call. Commands: m=mute, h=hold, r=resume, e=end\n")

	// done releases the forwarder once the loop below has returned, so a
	// command arriving after the call ended cannot block it forever.
	done := make(chan struct{})
	defer close(done)

	commands := make(chan string)
	go func() {
		defer close(commands)
		scanner := bufio.NewScanner(input)
		for scanner.Scan() {
			select {
			case commands <- strings.TrimSpace(strings.ToLower(scanner.Text())):
			case <-done:
				return
			}
		}
	}()

	state := &callState{connected: true}
	ticker := time.NewTicker(time.Second)
	tick := ticker.C
	defer func() { ticker.Stop() }()

	for state.connected {
		select {
		case <-ctx.Done():
			state.end()
			return ctx.Err()

		case <-tick:
			state.tick()
			s.ui.Printf("\r%s", formatClock(state.seconds))

		case cmd, ok := <-commands:
			if !ok {
				// input closed: treat as hanging up
				cmd = "e"
			}
			switch cmd {
			case "m":
				state.muted = !state.muted
				if state.muted {
					s.ui.Notify("Muted.")
				} else {
					s.ui.Notify("Unmuted.")
				}
			case "h":
				if !state.onHold {
					state.onHold = true
					ticker.Stop()
					tick = nil
					s.ui.Notify("On hold.")
				}
			case "r":
				if state.onHold {
					state.onHold = false
					ticker = time.NewTicker(time.Second)
					tick = ticker.C
					s.ui.Notify("Resumed.")
				}
			case "e", "q", "end":
				final := state.end()
				s.ui.Printf("\n")
				s.ui.Notify("Call ended. Duration: %s", formatClock(final))
			case "":
				// ignore blank lines
			default:
				s.ui.Notify("Unknown command %q.", cmd)
			}
		}
	}
	return nil
}

// History renders the call log. filter: "all", "outgoing", or "incoming".
func (s *CallsScreen) History(ctx context.Context, filter string) error {
	var (
		calls []api.CallRecord
		err   error
	)
	switch filter {
	case "outgoing":
		calls, err = s.api.OutgoingCallHistory(ctx)
	case "incoming":
		calls, err = s.api.IncomingCallHistory(ctx)
	default:
		calls, err = s.api.CallHistory(ctx)
	}
	if err != nil {
		s.ui.NotifyError("failed to load call history: %v", err)
		return err
	}
	s.renderHistory(calls)
	return nil
}

func (s *CallsScreen) HistoryRange(ctx context.Context, start, end time.Time) error {
	calls, err := s.api.CallHistoryByDateRange(ctx, start, end)
	if err != nil {
		s.ui.NotifyError("failed to load call history: %v", err)
		return err
	}
	s.renderHistory(calls)
	return nil
}

func (s *CallsScreen) renderHistory(calls []api.CallRecord) {
	if len(calls) == 0 {
		s.ui.Printf("No calls.\n")
		return
	}
	rows := make([][]string, 0, len(calls))
	for _, c := range calls {
		rows = append(rows, []string{
			formatTimestamp(c.CreatedAt), c.Direction, c.FromNumber, c.ToNumber,
			c.Status, formatClock(c.Duration),
		})
	}
	s.ui.table([]string{"DATE", "DIRECTION", "FROM", "TO", "STATUS", "DURATION"}, rows)
}

// Contacts renders the phone book, filtered like the contacts screen, for
// picking a destination while dialing.
func (s *CallsScreen) Contacts(ctx context.Context, query string) error {
	contacts, err := s.api.Contacts(ctx)
	if err != nil {
		s.ui.NotifyError("failed to load contacts: %v", err)
		return err
	}
	visible := FilterContacts(contacts, query)
	if len(visible) == 0 {
		s.ui.Printf("No contacts found.\n")
		return nil
	}
	rows := make([][]string, 0, len(visible))
	for _, c := range visible {
		rows = append(rows, []string{c.Name, c.Number})
	}
	s.ui.table([]string{"NAME", "NUMBER"}, rows)
	return nil
}
