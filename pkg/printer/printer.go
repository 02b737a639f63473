package printer

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"
)

// Kinds accepted by New.
const (
	KindUSB     = "usb"
	KindNetwork = "network"
	KindNone    = "none"
)

// Printer sends raw ESC/POS data to a thermal receipt printer.
type Printer interface {
	Print(ctx context.Context, data []byte) error
	// Ready reports whether the device can currently be reached.
	Ready(ctx context.Context) bool
	Kind() string
}

// New returns the printer for kind. An empty kind is the same as KindNone.
func New(kind, usbPath, address string) (Printer, error) {
	switch kind {
	case KindUSB:
		if usbPath == "" {
			return nil, fmt.Errorf("printer: USB device path is required")
		}
		return &usbPrinter{path: usbPath}, nil
	case KindNetwork:
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for a network printer")
		}
		return &networkPrinter{address: address, dialTimeout: 5 * time.Second, writeTimeout: 10 * time.Second}, nil
	case KindNone, "":
		return discard{}, nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network or none)", kind)
	}
}

// usbPrinter writes to a device file such as /dev/usb/lp0, opening it per job.
type usbPrinter struct {
	path string
}

func (p *usbPrinter) Print(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) Ready(context.Context) bool {
	_, err := os.Stat(p.path)
	return err == nil
}

func (p *usbPrinter) Kind() string { return KindUSB }

// networkPrinter speaks raw TCP, usually port 9100, one connection per job.
type networkPrinter struct {
	address      string
	dialTimeout  time.Duration
	writeTimeout time.Duration
}

func (p *networkPrinter) dial(ctx context.Context) (net.Conn, error) {
	d := net.Dialer{Timeout: p.dialTimeout}
	return d.DialContext(ctx, "tcp", p.address)
}

func (p *networkPrinter) Print(ctx context.Context, data []byte) error {
	conn, err := p.dial(ctx)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(p.writeTimeout))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Ready(ctx context.Context) bool {
	conn, err := p.dial(ctx)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (p *networkPrinter) Kind() string { return KindNetwork }

// discard is used when no printer is attached.
type discard struct{}

func (discard) Print(context.Context, []byte) error { return nil }
func (discard) Ready(context.Context) bool          { return false }
func (discard) Kind() string                        { return KindNone }
