package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	defaultDeliveryTTL = 10 * time.Minute
	defaultDeliveryMax = 1000
)

// SecurityValidator validates webhook requests
type SecurityValidator struct {
	config     SecurityConfig
	deliveries *expirable.LRU[string, time.Time]
}

func NewSecurityValidator(config SecurityConfig) *SecurityValidator {
	ttl := config.DeliveryCacheTTL
	if ttl <= 0 {
		ttl = defaultDeliveryTTL
	}
	size := config.DeliveryCacheMax
	if size <= 0 {
		size = defaultDeliveryMax
	}

	return &SecurityValidator{
		config:     config,
		deliveries: expirable.NewLRU[string, time.Time](size, nil, ttl),
	}
}

// ValidateGitHubSignature verifies GitHub webhook signature
func (v *SecurityValidator) ValidateGitHubSignature(payload []byte, signature string) error {
	if v.config.Secret == "" {
		return fmt.Errorf("webhook secret not configured")
	}

	// GitHub sends signature as "sha256=<hex>"
	expectedSigHex, ok := strings.CutPrefix(signature, "sha256=")
	if !ok {
		return fmt.Errorf("invalid signature format")
	}

	expectedSig, err := hex.DecodeString(expectedSigHex)
	if err != nil {
		return fmt.Errorf("invalid signature hex encoding: %w", err)
	}

	mac := hmac.New(sha256.New, []byte(v.config.Secret))
	mac.Write(payload)
	actualSig := mac.Sum(nil)

	if !hmac.Equal(expectedSig, actualSig) {
		return fmt.Errorf("signature verification failed")
	}

	return nil
}

// ValidateIPAddress checks if request IP is whitelisted
func (v *SecurityValidator) ValidateIPAddress(r *http.Request) error {
	if len(v.config.AllowedIPs) == 0 {
		return nil // No IP restriction
	}

	ip := extractIP(r)

	for _, allowedIP := range v.config.AllowedIPs {
		if ip == allowedIP {
			return nil
		}

		// CIDR range
		if strings.Contains(allowedIP, "/") {
			_, ipNet, err := net.ParseCIDR(allowedIP)
			if err != nil {
				continue
			}
			if ipNet.Contains(net.ParseIP(ip)) {
				return nil
			}
		}
	}

	return fmt.Errorf("IP %s not whitelisted", ip)
}

// MarkDelivery records an X-GitHub-Delivery id and reports whether it was
// already seen. Empty ids are never duplicates.
func (v *SecurityValidator) MarkDelivery(id string) (duplicate bool) {
	if id == "" {
		return false
	}
	if _, seen := v.deliveries.Get(id); seen {
		return true
	}
	v.deliveries.Add(id, time.Now())
	return false
}

// extractIP extracts client IP from request
func extractIP(r *http.Request) string {
	// proxy/load balancer
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip, _, _ := net.SplitHostPort(r.RemoteAddr)
	return ip
}

// ForgetDelivery drops a delivery id so that a redelivery is processed again.
func (v *SecurityValidator) ForgetDelivery(id string) {
	v.deliveries.Remove(id)
}
