package trigger

import (
	"context"

	"github.com/rmrobinson/triplog/services/transit"
	"github.com/tarm/serial"
	"go.uber.org/zap"
)

const (
	// DefaultBaudRate is used if no baud rate is configured for the sensor.
	DefaultBaudRate = 9600
)

// Serial waits for a sensor attached to a serial port, such as a door contact or push button,
// which writes one line each time the vehicle reaches a stop.
type Serial struct {
	logger *zap.Logger

	port   *serial.Port
	reader *lineReader
}

// NewSerial opens the serial port at the specified path.
// Once NewSerial succeeds the caller should be sure to invoke Close when it is finished with the port.
func NewSerial(logger *zap.Logger, path string, baud int) (*Serial, error) {
	if baud <= 0 {
		baud = DefaultBaudRate
	}

	c := &serial.Config{
		Name: path,
		Baud: baud,
	}
	port, err := serial.OpenPort(c)
	if err != nil {
		return nil, err
	}

	logger.Info("opened sensor port",
		zap.String("port_path", path),
		zap.Int("baud", baud),
	)

	return &Serial{
		logger: logger,
		port:   port,
		reader: newLineReader(port),
	}, nil
}

// Wait blocks until the sensor reports an arrival.
func (s *Serial) Wait(ctx context.Context, stop transit.Stop) error {
	s.logger.Info("waiting for sensor",
		zap.Int("stop_sequence", stop.Sequence),
		zap.String("stop_name", stop.Name),
	)
	return s.reader.wait(ctx)
}

// Close releases the serial port.
func (s *Serial) Close() error {
	return s.port.Close()
}
