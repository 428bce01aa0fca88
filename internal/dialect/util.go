package dialect

import (
	"net"
	"strconv"
)

// HostVarKey builds a host variable key from a platform prefix and a field.
func HostVarKey(prefix string, f Field) string {
	return prefix + "_" + string(f)
}

// GroupNameFor returns the inventory group holding hosts of the given prefix.
func GroupNameFor(prefix string) string {
	return prefix + "_databases"
}

func hostPort(server string, port int) string {
	return net.JoinHostPort(server, strconv.Itoa(port))
}
