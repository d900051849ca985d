package rabbitmq

const (
	ExchangeName = "airline-ops"
	ExchangeKind = "topic"
	QueueName    = "airline-ops.ground-ops"
)

// Routing keys published by the service.
const (
	KeyTicketIssued        = "ticket.issued"
	KeyTicketCancelled     = "ticket.cancelled"
	KeyBaggageChecked      = "baggage.checked"
	KeyFlightStatusChanged = "flight.status_changed"
)

// Binding patterns for the ground-handling feed the service consumes.
const (
	BindGroundBaggage = "ground.baggage.*"
	BindGroundFlight  = "ground.flight.*"
)
