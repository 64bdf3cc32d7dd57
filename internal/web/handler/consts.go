package handler

const (
	// APIPath is the prefix of the json api.
	APIPath = "/api"

	// RootPath is the root path of a route group.
	RootPath = "/"

	// IDPath is the path of a single record below a route group.
	IDPath = "/:id"

	// ErrNilDepsFatalLogMsg is used if router or deps are missing.
	ErrNilDepsFatalLogMsg = "router or handler dependencies are nil"

	// InternalServerErrorMessage is sent for every unexpected failure.
	InternalServerErrorMessage = "Internal server error"
)
