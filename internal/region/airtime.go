package region

import "time"

const (
	preambleSymbols = 8
	fskBitRate      = 50000

	// preamble, sync-word, length and crc bytes of a FSK frame.
	fskOverheadBytes = 5 + 3 + 1 + 2
)

// AirTime returns the time-on-air of a frame with the given PHYPayload
// length, sent with the given radio parameters using an explicit header
// and an 8 symbol preamble.
func AirTime(rps RPS, payloadLen int) time.Duration {
	if rps == IllegalRPS || payloadLen < 0 {
		return 0
	}

	sf := rps.SpreadingFactor()
	if sf == FSK {
		return time.Duration(payloadLen+fskOverheadBytes) * 8 * time.Second / fskBitRate
	}

	bw := int64(rps.Bandwidth().Hertz())
	if bw == 0 || sf > SF12 {
		return 0
	}
	chips := int64(sf.Chips())

	var de int64
	if rps.Bandwidth() == BW125 && sf >= SF11 {
		de = 1
	}
	var crc int64
	if rps.CRC() {
		crc = 1
	}

	// payload symbols
	n := 8*int64(payloadLen) - 4*chips + 28 + 16*crc
	div := 4 * (chips - 2*de)
	symbols := int64(8)
	if n > 0 {
		symbols += (n + div - 1) / div * (int64(rps.CodingRate()) + 5)
	}

	// the preamble adds 4.25 symbols, everything is counted in quarter
	// symbols to stay in integer math.
	quarters := 4*(preambleSymbols+symbols) + 17
	return time.Duration(quarters * (int64(1) << uint(chips)) * int64(time.Second) / (4 * bw))
}
