package region

import "github.com/pkg/errors"

// errors
var (
	ErrInvalidIndex        = errors.New("channel index out of range")
	ErrProtectedChannel    = errors.New("default channel can not be modified")
	ErrFrequencyOutOfRange = errors.New("frequency outside the region bounds")
	ErrInvalidPowerIndex   = errors.New("invalid tx power index")
	ErrInvalidDROffset     = errors.New("invalid rx1 data-rate offset")
	ErrIllegalRateCode     = errors.New("illegal data-rate")
	ErrDataRateRange       = errors.New("invalid data-rate range")
	ErrChannelDisabled     = errors.New("channel is disabled")
	ErrDataRateNotAllowed  = errors.New("data-rate not allowed on channel")
	ErrDutyCycleLimited    = errors.New("band duty-cycle exhausted")
	ErrNoChannel           = errors.New("no channel available for data-rate")
	ErrInvalidChannelMask  = errors.New("invalid channel mask")
	ErrInvalidDutyCycle    = errors.New("invalid duty-cycle")
	ErrSilenced            = errors.New("transmissions silenced by network")
)
