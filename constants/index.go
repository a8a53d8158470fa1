package constants

const (
	TITLE_SUCCESS = "Done!"
	TITLE_ERROR   = "Oops..."

	FORM_INCOMPLETE  = "Complete the form"
	TRANSPORT_FAILED = "Could not reach the booking service, try again"

	PASSENGER_CREATED       = "Passenger registered"
	PASSENGER_CREATE_FAILED = "Could not register the passenger"
	PASSENGER_UPDATED       = "Passenger updated"
	PASSENGER_UPDATE_FAILED = "Could not update the passenger"

	AIRPLANE_CREATED       = "Airplane created"
	AIRPLANE_CREATE_FAILED = "Could not create the airplane"
	AIRPLANE_UPDATED       = "Airplane updated"
	AIRPLANE_UPDATE_FAILED = "Could not update the airplane"

	FLIGHT_CREATED       = "Flight registered"
	FLIGHT_CREATE_FAILED = "Could not register the flight"
	FLIGHT_UPDATED       = "Flight updated"
	FLIGHT_UPDATE_FAILED = "Could not update the flight"

	TICKET_CREATED       = "Ticket created"
	TICKET_CREATE_FAILED = "Could not create the ticket"
	TICKET_UPDATED       = "Ticket updated"
	TICKET_UPDATE_FAILED = "Could not update the ticket"

	LOAD_FAILED = "Could not load the list"

	ERROR_INPUT                = "Invalid input"
	ERROR_VALIDATION           = "Validation failed"
	ERROR_INTERNAL_ERROR       = "Internal error"
	ERROR_PARSE_DATA_TO_LOCALS = "Request input missing"
	DATA_INPUT_IS_NOT_NUMBER   = "Id must be a number"
	NOT_FOUND                  = "Record not found"
	QR_FAILED                  = "Could not generate the ticket code"
)
