package handlers

// HandlerBundle groups the handlers the router wires up.
type HandlerBundle struct {
	Appointments *AppointmentHandler
	Availability *AvailabilityHandler
	Companies    *CompanyHandler
}
