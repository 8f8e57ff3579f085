package services

import (
	"fmt"
	"net"
)

// IPChecker
type IPChecker interface {
	InTrustedSubnet(ip net.IP) bool
}

// NewIPChecker with empty subnet rejects every address
func NewIPChecker(trustedSubnet string) (IPChecker, error) {
	if trustedSubnet == "" {
		return ipChecker{}, nil
	}

	_, subnet, err := net.ParseCIDR(trustedSubnet)
	if err != nil {
		return nil, fmt.Errorf("invalid trusted subnet %q: %w", trustedSubnet, err)
	}

	return ipChecker{subnet: subnet}, nil
}

type ipChecker struct {
	subnet *net.IPNet
}

func (c ipChecker) InTrustedSubnet(ip net.IP) bool {
	if c.subnet == nil || ip == nil {
		return false
	}

	return c.subnet.Contains(ip)
}
