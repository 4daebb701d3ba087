package address

import (
	"net"
	"strconv"

	"github.com/pkg/errors"
)

const DefaultHost = "0.0.0.0"

type Address struct {
	Host string
	Port uint16
}

// Parse accepts host:port, :port and a bare port. A missing host is replaced by DefaultHost.
func Parse(addr string) (Address, error) {
	if _, err := strconv.ParseUint(addr, 10, 64); err == nil {
		addr = ":" + addr
	}

	host, rawPort, err := net.SplitHostPort(addr)
	if err != nil {
		return Address{}, errors.New("no port given")
	}

	port, err := strconv.ParseUint(rawPort, 10, 16)
	if err != nil {
		return Address{}, errors.Errorf("invalid port: %s", rawPort)
	}

	if len(host) == 0 {
		host = DefaultHost
	}

	return Address{Host: host, Port: uint16(port)}, nil
}

func (a Address) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(int(a.Port)))
}
