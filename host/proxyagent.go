package host

import "net/http"

// ProxyAgentConfig mirrors the proxy settings older node configurations may
// still carry. Outbound proxying is now handled entirely by the host's HTTP
// layer, so the values are accepted and ignored.
type ProxyAgentConfig struct {
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// ProxyAgent returns nil for any configuration.
//
// Deprecated: proxy handling moved into the host's HTTP helper. The function
// is kept so configurations referencing it keep loading; it has no effect.
func ProxyAgent(cfg ProxyAgentConfig) *http.Transport {
	return nil
}
