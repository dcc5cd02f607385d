package detection

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"safety-worker-go/internal/models"
)

var ErrNotConnected = errors.New("detection service not connected")

// FrameEncoder produces the JPEG sent to the inference service
type FrameEncoder interface {
	Encode(frame *models.Frame) ([]byte, error)
}

// Client calls the inference service over gRPC with reconnect backoff.
// It implements models.Detector and is shared by all camera workers.
type Client struct {
	endpoint string
	timeout  time.Duration
	encoder  FrameEncoder
	dialOpts []grpc.DialOption

	mu   sync.RWMutex
	conn *grpc.ClientConn

	lastFailTime     time.Time
	consecutiveFails int
	maxRetryBackoff  time.Duration
}

func NewClient(endpoint string, timeout time.Duration, encoder FrameEncoder, opts ...grpc.DialOption) *Client {
	return &Client{
		endpoint:        endpoint,
		timeout:         timeout,
		encoder:         encoder,
		dialOpts:        opts,
		maxRetryBackoff: 30 * time.Second,
	}
}

func (c *Client) Endpoint() string { return c.endpoint }

// Connect establishes the gRPC channel. It does not block on the server.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	target, creds, err := parseGRPCEndpoint(c.endpoint)
	if err != nil {
		return fmt.Errorf("failed to parse AI endpoint %s: %w", c.endpoint, err)
	}

	log.Info().
		Str("original_endpoint", c.endpoint).
		Str("normalized_endpoint", target).
		Bool("use_tls", creds.Info().SecurityProtocol == "tls").
		Msg("Connecting to AI gRPC service")

	opts := append([]grpc.DialOption{grpc.WithTransportCredentials(creds)}, c.dialOpts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return fmt.Errorf("failed to connect to AI service at %s: %w", target, err)
	}

	c.conn = conn
	c.consecutiveFails = 0
	return nil
}

// Close tears down the gRPC channel
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	log.Info().Str("ai_endpoint", c.endpoint).Msg("AI gRPC connection closed")
	return err
}

// IsConnected reports whether the channel is usable
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.conn == nil {
		return false
	}
	state := c.conn.GetState()
	return state == connectivity.Ready || state == connectivity.Idle || state == connectivity.Connecting
}

// EnsureConnected reconnects a missing or failed channel, honouring backoff
func (c *Client) EnsureConnected() error {
	if !c.shouldRetry() {
		return fmt.Errorf("%w: in backoff period after consecutive failures", ErrNotConnected)
	}

	c.mu.RLock()
	needsConnection := c.conn == nil
	if c.conn != nil {
		state := c.conn.GetState()
		needsConnection = state == connectivity.TransientFailure || state == connectivity.Shutdown
	}
	c.mu.RUnlock()

	if needsConnection {
		if err := c.Connect(); err != nil {
			c.recordFailure()
			return fmt.Errorf("%w: %v", ErrNotConnected, err)
		}
	}
	return nil
}

// Detect implements models.Detector
func (c *Client) Detect(ctx context.Context, frame *models.Frame) (models.FrameDetections, error) {
	if frame == nil {
		return models.FrameDetections{}, fmt.Errorf("nil frame")
	}
	if err := c.EnsureConnected(); err != nil {
		return models.FrameDetections{}, err
	}

	jpeg, err := c.encoder.Encode(frame)
	if err != nil {
		return models.FrameDetections{}, fmt.Errorf("failed to encode frame %d: %w", frame.FrameID, err)
	}
	req, err := EncodeRequest(frame, jpeg)
	if err != nil {
		return models.FrameDetections{}, fmt.Errorf("failed to build detect request: %w", err)
	}

	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn == nil {
		return models.FrameDetections{}, ErrNotConnected
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp := new(structpb.Struct)
	if err := conn.Invoke(ctx, DetectMethod, req, resp); err != nil {
		c.recordFailure()
		return models.FrameDetections{}, fmt.Errorf("inference failed: %w", err)
	}

	c.mu.Lock()
	c.consecutiveFails = 0
	c.mu.Unlock()

	return DecodeResponse(resp, frame)
}

// shouldRetry applies exponential backoff: 1s, 2s, 4s ... up to maxRetryBackoff
func (c *Client) shouldRetry() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.consecutiveFails == 0 {
		return true
	}

	backoff := time.Duration(1<<uint(min(c.consecutiveFails-1, 16))) * time.Second
	if backoff > c.maxRetryBackoff {
		backoff = c.maxRetryBackoff
	}
	return time.Since(c.lastFailTime) >= backoff
}

func (c *Client) recordFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.consecutiveFails++
	c.lastFailTime = time.Now()

	if c.consecutiveFails <= 5 {
		log.Warn().
			Str("ai_endpoint", c.endpoint).
			Int("consecutive_fails", c.consecutiveFails).
			Msg("AI connection failure recorded")
	}
}

// parseGRPCEndpoint normalizes host[:port] and http(s) URLs into a dial
// target. Ports 443/8443/9443 and bare hostnames imply TLS. passthrough
// and unix targets are used as given, without TLS.
func parseGRPCEndpoint(endpoint string) (string, credentials.TransportCredentials, error) {
	if endpoint == "" {
		return "", nil, fmt.Errorf("empty endpoint")
	}
	if strings.HasPrefix(endpoint, "passthrough:") || strings.HasPrefix(endpoint, "unix:") {
		return endpoint, insecure.NewCredentials(), nil
	}

	if !strings.Contains(endpoint, "://") {
		if strings.Contains(endpoint, ":") {
			parts := strings.Split(endpoint, ":")
			if port, err := strconv.Atoi(parts[len(parts)-1]); err == nil && (port == 443 || port == 8443 || port == 9443) {
				endpoint = "https://" + endpoint
			} else {
				endpoint = "http://" + endpoint
			}
		} else {
			endpoint = "https://" + endpoint + ":443"
		}
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", nil, fmt.Errorf("invalid endpoint URL: %w", err)
	}

	host := u.Host
	if u.Port() == "" {
		switch u.Scheme {
		case "https":
			host = u.Hostname() + ":443"
		case "http":
			host = u.Hostname() + ":80"
		}
	}

	var creds credentials.TransportCredentials
	switch u.Scheme {
	case "https":
		creds = credentials.NewTLS(&tls.Config{ServerName: u.Hostname()})
	case "http":
		creds = insecure.NewCredentials()
	default:
		return "", nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}

	return host, creds, nil
}
