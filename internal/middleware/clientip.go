package middleware

import (
	"net"

	"github.com/labstack/echo/v4"
)

// ClientIPExtractor decides which address c.RealIP reports, and with it the rate limiter bucket and
// the logged remote_ip. Without trusted proxies the TCP peer is used and forwarding headers are
// ignored. With trusted proxies, X-Forwarded-For is walked from the right and the first hop outside
// those networks is the client; the default loopback, link-local and private ranges are not trusted
// implicitly.
func ClientIPExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}

	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, network := range trusted {
		opts = append(opts, echo.TrustIPRange(network))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
