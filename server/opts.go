package server

import "github.com/shravanasati/assetserver/middleware"

type ServerOpts struct {
	// The address for the server to listen on. Defaults to 0.0.0.0:54465.
	Address string

	// Recovery is called with the return value of the recover() call when a handler panics
	// and no recovery middleware inside the handler caught it first.
	// It writes the response for the failed request.
	Recovery middleware.RecoveryFunc
}
