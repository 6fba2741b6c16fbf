package controller

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.bug.st/serial"

	"gesture-logger/models"
	"gesture-logger/services/ingest"
	"gesture-logger/utils"
)

// Port is the subset of serial.Port the collector needs.
type Port interface {
	io.ReadWriteCloser
	ResetInputBuffer() error
}

// Collector owns the serial link to the wristband and the reader that
// parses its stream. In simulation mode there is no port.
type Collector struct {
	cfg    *utils.CollectConfig
	port   Port
	source string
	reader *ingest.IMUReader
}

// NewCollector opens the configured serial port, or prepares a simulated
// reader when simulation is enabled.
func NewCollector(cfg *utils.CollectConfig) (*Collector, error) {
	if cfg.Simulation.Enabled {
		return &Collector{
			cfg:    cfg,
			source: "simulation",
			reader: ingest.NewSimulatedIMUReader(cfg.Simulation.RateHz, cfg.Recording.ChannelBuffer, uint64(time.Now().UnixNano())),
		}, nil
	}

	if cfg.Serial.Port == "" {
		return nil, fmt.Errorf("serial.port is not set")
	}
	p, err := serial.Open(cfg.Serial.Port, &serial.Mode{BaudRate: cfg.Serial.BaudRate})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", cfg.Serial.Port, err)
	}
	utils.L().Info("serial port open  (port=%s, baud=%d)", cfg.Serial.Port, cfg.Serial.BaudRate)
	return NewCollectorWithPort(cfg, p, cfg.Serial.Port), nil
}

// NewCollectorWithPort uses an already open port.
func NewCollectorWithPort(cfg *utils.CollectConfig, p Port, name string) *Collector {
	return &Collector{
		cfg:    cfg,
		port:   p,
		source: name,
		reader: ingest.NewIMUReader(p, cfg.Recording.ChannelBuffer),
	}
}

// Start counts down, triggers streaming on the MCU and launches the
// reader. Cancelling ctx stops the reader.
func (c *Collector) Start(ctx context.Context) error {
	for i := c.cfg.Recording.CountdownSeconds; i > 0; i-- {
		utils.L().Info("starting in %d…", i)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}

	if c.port != nil {
		if err := c.send(c.cfg.Serial.Command); err != nil {
			return err
		}
		if err := c.port.ResetInputBuffer(); err != nil {
			return fmt.Errorf("reset serial input: %w", err)
		}
		// A blocked Read only returns once the port is closed.
		go func() {
			<-ctx.Done()
			c.port.Close()
		}()
	}

	c.reader.Start(ctx)
	return nil
}

// send writes one command line, appending the newline the MCU expects.
func (c *Collector) send(msg string) error {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	if _, err := io.WriteString(c.port, msg); err != nil {
		return fmt.Errorf("send %q: %w", strings.TrimSpace(msg), err)
	}
	return nil
}

// Samples is the parsed sample stream; it is closed when the reader stops.
func (c *Collector) Samples() <-chan *models.IMUSample {
	return c.reader.Out
}

// Source names where samples come from (port name or "simulation").
func (c *Collector) Source() string {
	return c.source
}

// LogStats prints the reader counters.
func (c *Collector) LogStats() {
	p, d, x := c.reader.Stats()
	utils.L().Info("  imu      produced=%d  dropped=%d  rejected=%d", p, d, x)
}

// Close releases the serial port.
func (c *Collector) Close() error {
	if c.port == nil {
		return nil
	}
	return c.port.Close()
}
