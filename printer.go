package mxw01

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ecc1/radio"
	"github.com/pkg/errors"
)

const (
	// DefaultTimeout bounds the wait for a command's response.
	DefaultTimeout = 30 * time.Second

	verbose = false
)

func init() {
	if verbose {
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.LUTC)
	}
}

// Printer represents a connection to an MXW01 printer.
// Commands that share an identifier must not be issued concurrently.
type Printer struct {
	// Timeout bounds the wait for each response.
	// Zero waits until the context is done.
	Timeout time.Duration

	transport Transport
	corr      *Correlator
	progress  func(string)
	done      chan struct{}
	closeOnce sync.Once

	setupMu sync.Mutex

	mu       sync.Mutex
	ready    bool
	watching <-chan struct{}
	stats    radio.Statistics
}

// New returns a printer that talks over t and reports progress
// messages to the given function, which may be nil.
func New(t Transport, progress func(string)) *Printer {
	if progress == nil {
		progress = func(string) {}
	}
	return &Printer{
		Timeout:   DefaultTimeout,
		transport: t,
		corr:      NewCorrelator(),
		progress:  progress,
		done:      make(chan struct{}),
	}
}

// Name returns the printer's model name.
func (p *Printer) Name() string {
	return DeviceName
}

// Connect sets up the printer's channels and queries its status.
func (p *Printer) Connect(ctx context.Context) (Notification, error) {
	st, err := p.connect(ctx)
	if err != nil {
		p.reset()
		p.progress(fmt.Sprintf("Connection failed: %v", err))
		return Notification{}, err
	}
	p.progress(fmt.Sprintf("Connected %d%% %d°C", st.BatteryLevel, st.Temperature))
	return st, nil
}

func (p *Printer) connect(ctx context.Context) (Notification, error) {
	if p.transport == nil {
		return Notification{}, ErrNotConnected
	}
	if err := p.setup(); err != nil {
		return Notification{}, err
	}
	p.startWatch(p.transport.Disconnected())
	return p.Status(ctx)
}

// startWatch watches for a disconnect unless that channel
// is already being watched.
func (p *Printer) startWatch(disconnected <-chan struct{}) {
	if disconnected == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.watching == disconnected {
		return
	}
	p.watching = disconnected
	go p.watch(disconnected)
}

func (p *Printer) watch(disconnected <-chan struct{}) {
	select {
	case <-disconnected:
		p.handleDisconnect()
	case <-p.done:
	}
}

func (p *Printer) handleDisconnect() {
	p.progress("Device disconnected")
	p.reset()
	p.corr.Fail(ErrDisconnected)
}

func (p *Printer) reset() {
	p.mu.Lock()
	p.ready = false
	p.mu.Unlock()
}

// setup establishes the channels unless they are already up.
func (p *Printer) setup() error {
	p.setupMu.Lock()
	defer p.setupMu.Unlock()
	if p.isReady() {
		return nil
	}
	if err := p.transport.Setup(p.handleNotification); err != nil {
		return errors.Wrap(err, "setting up characteristics")
	}
	p.mu.Lock()
	p.ready = true
	p.mu.Unlock()
	return nil
}

func (p *Printer) isReady() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

func (p *Printer) handleNotification(data []byte) {
	p.mu.Lock()
	p.stats.Packets.Received++
	p.stats.Bytes.Received += len(data)
	p.mu.Unlock()
	p.corr.Dispatch(data)
}

func (p *Printer) sent(n int) {
	p.mu.Lock()
	p.stats.Packets.Sent++
	p.stats.Bytes.Sent += n
	p.mu.Unlock()
}

// Subscribe calls f with every notification from the printer.
// The returned function cancels the subscription.
func (p *Printer) Subscribe(f func(Notification)) func() {
	return p.corr.Subscribe(f)
}

// SendCommand sends a command frame. If expectResponse is true,
// it waits for the matching notification and returns it.
func (p *Printer) SendCommand(ctx context.Context, cmd Command, payload []byte, expectResponse bool) (Notification, error) {
	if p.transport == nil {
		return Notification{}, ErrNotConnected
	}
	if err := p.setup(); err != nil {
		return Notification{}, err
	}
	frame := BuildFrame(cmd, payload)
	var w *Waiter
	if expectResponse {
		// Register first so that an immediate reply is not lost.
		w = p.corr.Expect(cmd)
	}
	if verbose {
		log.Printf("command: % X", frame)
	}
	if err := p.transport.WriteCommand(frame); err != nil {
		if w != nil {
			p.corr.Cancel(w)
		}
		return Notification{}, errors.Wrapf(err, "sending %v", cmd)
	}
	p.sent(len(frame))
	if w == nil {
		return Notification{}, nil
	}
	return p.wait(ctx, w)
}

func (p *Printer) wait(ctx context.Context, w *Waiter) (Notification, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	n, err := w.Wait(ctx)
	if err == nil {
		return n, nil
	}
	p.corr.Cancel(w)
	if err == context.DeadlineExceeded {
		err = ErrNoResponse
	}
	return Notification{}, errors.Wrapf(err, "waiting for %v", w.cmd)
}

// Status queries the printer's state, battery level and temperature.
func (p *Printer) Status(ctx context.Context) (Notification, error) {
	return p.SendCommand(ctx, CmdGetStatus, []byte{0x00}, true)
}

// BatteryLevel returns the battery charge in percent.
func (p *Printer) BatteryLevel(ctx context.Context) (int, error) {
	n, err := p.SendCommand(ctx, CmdBatteryLevel, []byte{0x00}, true)
	return n.BatteryLevel, err
}

// Version returns the firmware version and print head type.
func (p *Printer) Version(ctx context.Context) (Notification, error) {
	return p.SendCommand(ctx, CmdGetVersion, []byte{0x00}, true)
}

// PrintType returns the print head type.
func (p *Printer) PrintType(ctx context.Context) (Notification, error) {
	return p.SendCommand(ctx, CmdGetPrintType, []byte{0x00}, true)
}

// QueryCount returns the printer's internal counter bytes.
func (p *Printer) QueryCount(ctx context.Context) ([]byte, error) {
	n, err := p.SendCommand(ctx, CmdQueryCount, []byte{0x00}, true)
	return n.Count, err
}

// CancelPrint asks the printer to abandon the current job.
func (p *Printer) CancelPrint(ctx context.Context) error {
	_, err := p.SendCommand(ctx, CmdCancelPrint, []byte{0x00}, false)
	return err
}

// EjectPaper feeds the paper forward by the given number of lines.
func (p *Printer) EjectPaper(ctx context.Context, lines uint16) error {
	_, err := p.SendCommand(ctx, CmdEjectPaper, marshalUint16(lines), false)
	return err
}

// RetractPaper pulls the paper back by the given number of lines.
func (p *Printer) RetractPaper(ctx context.Context, lines uint16) error {
	_, err := p.SendCommand(ctx, CmdRetractPaper, marshalUint16(lines), false)
	return err
}

// Statistics returns the byte and packet counts for the connection.
func (p *Printer) Statistics() radio.Statistics {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Close closes the connection to the printer.
func (p *Printer) Close() error {
	p.closeOnce.Do(func() { close(p.done) })
	p.reset()
	if p.transport == nil {
		return nil
	}
	return p.transport.Close()
}
