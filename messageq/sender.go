package messageq

import (
	"io"

	"github.com/streadway/amqp"

	"github.com/iterum-provenance/dbt-runner/logging"
	"github.com/iterum-provenance/dbt-runner/transmit"
	"github.com/iterum-provenance/dbt-runner/util"
)

// Channel is the part of an amqp channel the Sender publishes through
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// DialFunc opens a channel to the broker, the returned closer closes the underlying connection
type DialFunc func(brokerURL string) (Channel, io.Closer, error)

// Dial connects to a RabbitMQ broker and opens a channel on it
func Dial(brokerURL string) (Channel, io.Closer, error) {
	conn, err := amqp.Dial(brokerURL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	return ch, conn, nil
}

// Sender is the structure that publishes run events on a RabbitMQ queue
type Sender struct {
	TargetQueue string
	BrokerURL   string
	Dial        DialFunc
	log         logging.Logger
}

// NewSender creates a new sender publishing on targetQueue of the broker at brokerURL
func NewSender(brokerURL, targetQueue string, logger logging.Logger) Sender {
	return Sender{
		TargetQueue: targetQueue,
		BrokerURL:   brokerURL,
		Dial:        Dial,
		log:         logger,
	}
}

// Publish sends msg to the target queue, declaring it if needed.
// Broker failures are returned as a transmit.ConnectionError.
func (sender Sender) Publish(msg transmit.Serializable) (err error) {
	defer util.ReturnErrOnPanic(&err)()
	body, err := msg.Serialize()
	if err != nil {
		return err
	}

	sender.log.Debugf("Connecting to message broker for queue %s", sender.TargetQueue)
	ch, conn, err := sender.Dial(sender.BrokerURL)
	if err != nil {
		return transmit.ErrConnection(err)
	}
	defer conn.Close()
	defer ch.Close()

	q, err := ch.QueueDeclare(
		sender.TargetQueue, // name
		true,               // durable
		false,              // delete when unused
		false,              // exclusive
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		return transmit.ErrConnection(err)
	}

	err = ch.Publish(
		"",     // exchange
		q.Name, // routing key
		false,  // mandatory
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		})
	if err != nil {
		return transmit.ErrConnection(err)
	}
	sender.log.Infof("Published run event on queue '%v'", q.Name)
	return nil
}
