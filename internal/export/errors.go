package export

import "github.com/homsent/homsent-chef/backend/internal/service"

var (
	ErrNothingPending  = service.ErrNothingPending
	ErrUnknownRetailer = service.ErrUnknownRetailer
)
