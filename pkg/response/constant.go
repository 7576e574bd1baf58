package response

const (
	MessageSuccess          = "Success"
	DefaultErrorMessage     = "Something went wrong"
	InternalServerErrorCode = 500

	// TimestampFormat keeps microseconds so clients can order rows created in the same second.
	TimestampFormat = "2006-01-02T15:04:05.000000Z07:00"
)
