// Package publish pushes decoded observations onto a NATS bus for
// downstream consumers.
package publish

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"metar_parser/internal/metar"
)

// DefaultSubjectPrefix is the subject tree observations are published
// under; the station ID is appended, e.g. "metar.observations.EYVI".
const DefaultSubjectPrefix = "metar.observations"

// Publisher publishes decoded reports to NATS.
type Publisher struct {
	nc     *nats.Conn
	prefix string
}

// Connect dials the NATS server and returns a publisher. An empty
// prefix selects DefaultSubjectPrefix.
func Connect(url, prefix string) (*Publisher, error) {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	nc, err := nats.Connect(url, nats.Name("metar-publisher"))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Publisher{nc: nc, prefix: prefix}, nil
}

// Publish sends the report to the station's subject as JSON.
func (p *Publisher) Publish(rep *metar.WeatherReport) error {
	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	subject := p.prefix + "." + rep.StationID
	if err := p.nc.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (p *Publisher) Close() error {
	return p.nc.Drain()
}
