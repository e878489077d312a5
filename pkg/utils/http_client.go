package utils

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrForbiddenAddress 目标地址为回环、内网或链路本地地址
	ErrForbiddenAddress = errors.New("destination address is not allowed")
	// ErrUnsupportedScheme 只允许 http/https
	ErrUnsupportedScheme = errors.New("only http and https urls are allowed")
)

const maxRedirects = 5

// 运营商级 NAT 地址段，netip 没有对应的判断方法
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

type clientOptions struct {
	allowPrivate bool
}

// ClientOption 客户端选项
type ClientOption func(*clientOptions)

// AllowPrivateNetworks 允许访问内网与回环地址，仅用于本地测试
func AllowPrivateNetworks() ClientOption {
	return func(o *clientOptions) { o.allowPrivate = true }
}

// NewHTTPClient 创建统一配置的 Resty 客户端
// 用于服务端拉取远程图片；默认在建立连接时拒绝内网地址，重定向与 DNS 重绑定同样受限
func NewHTTPClient(timeout time.Duration, opts ...ClientOption) *resty.Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	if !o.allowPrivate {
		dialer.Control = guardDial
	}

	transport := &http.Transport{
		// 不走环境代理，否则连接的是代理地址，校验失效
		Proxy:                 nil,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}

	return resty.New().
		SetTransport(transport).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetRedirectPolicy(resty.RedirectPolicyFunc(checkRedirect)).
		SetHeader("User-Agent", "store-admin-dashboard/1.0")
}

// checkRedirect 限制重定向次数与协议
func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return ErrUnsupportedScheme
	}
	return nil
}

// guardDial 在连接建立前校验解析后的 IP
func guardDial(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrForbiddenAddress, address)
	}
	addr, err := netip.ParseAddr(host)
	if err != nil || !IsPublicAddr(addr) {
		return fmt.Errorf("%w: %s", ErrForbiddenAddress, host)
	}
	return nil
}

// IsPublicAddr 是否为可对外访问的公网地址
func IsPublicAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	switch {
	case !addr.IsValid(),
		addr.IsUnspecified(),
		addr.IsLoopback(),
		addr.IsPrivate(),
		addr.IsLinkLocalUnicast(),
		addr.IsLinkLocalMulticast(),
		addr.IsInterfaceLocalMulticast(),
		addr.IsMulticast(),
		sharedAddressSpace.Contains(addr):
		return false
	}
	return true
}
