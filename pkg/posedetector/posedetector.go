package posedetector

import (
	"FashionistAI/internal/entity"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrNoSubject is returned when the pose service finds no person in
// the frame.
var ErrNoSubject = errors.New("no subject detected in frame")

type IPoseDetector interface {
	DetectPose(frame []byte, view entity.View) (*Detection, error)
	IsConnected() bool
	Reconnect() error
	Close()
}

// Detection is the pose service output for one frame: the subject's
// keypoint set plus an optional opaque mesh payload.
type Detection struct {
	Keypoints *entity.KeypointSet
	MeshData  json.RawMessage
}

type poseServiceResponse struct {
	Detected  bool            `json:"detected"`
	Keypoints []poseKeypoint  `json:"keypoints"`
	MeshData  json.RawMessage `json:"mesh_data,omitempty"`
	Error     string          `json:"error,omitempty"`
}

type poseKeypoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

type poseClient struct {
	conn         *websocket.Conn
	mu           sync.Mutex
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func New() IPoseDetector {
	client := &poseClient{
		pingInterval: 30 * time.Second,
		readTimeout:  10 * time.Second,
		writeTimeout: 5 * time.Second,
	}

	go func() {
		if err := client.Reconnect(); err != nil {
			log.Printf("Initial connection to pose service failed: %v. Will retry on demand.", err)
		} else {
			log.Printf("Successfully connected to pose service")
		}
	}()

	return client
}

func (c *poseClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *poseClient) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	url := os.Getenv("POSE_SERVICE_WS_URL")
	if url == "" {
		return fmt.Errorf("URL for pose detection service not configured")
	}

	log.Printf("Connecting to pose service at %s", url)

	dialer := websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout))
		if err != nil {
			log.Printf("Error sending pong: %v", err)
		}
		return nil
	})

	c.conn = conn
	go c.keepAlive()

	return nil
}

func (c *poseClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *poseClient) keepAlive() {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		conn := c.conn
		if conn == nil {
			c.mu.Unlock()
			return
		}

		err := conn.WriteControl(
			websocket.PingMessage,
			[]byte{},
			time.Now().Add(c.writeTimeout),
		)
		if err != nil {
			log.Printf("Ping failed for pose service, marking connection as dead: %v", err)
			c.conn = nil
			conn.Close()
			c.mu.Unlock()
			return
		}

		c.mu.Unlock()
	}
}

func (c *poseClient) getConnection() (*websocket.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil, errors.New("pose service connection not established")
	}
	return c.conn, nil
}

// DetectPose sends one image frame to the pose service and decodes the
// detected keypoint set. The view tag is attached to the returned set.
func (c *poseClient) DetectPose(frame []byte, view entity.View) (*Detection, error) {
	conn, err := c.getConnection()
	if err != nil {
		if err := c.Reconnect(); err != nil {
			return nil, fmt.Errorf("cannot connect to pose detection service: %w", err)
		}
		conn, err = c.getConnection()
		if err != nil {
			return nil, err
		}
	}

	c.mu.Lock()

	conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))

	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		c.conn = nil
		conn.Close()
		c.mu.Unlock()
		return nil, fmt.Errorf("error sending frame: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(c.readTimeout))

	c.mu.Unlock()

	_, message, err := conn.ReadMessage()
	if err != nil {
		c.mu.Lock()
		c.conn = nil
		conn.Close()
		c.mu.Unlock()
		return nil, fmt.Errorf("error reading pose message: %w", err)
	}

	c.mu.Lock()
	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})
	c.mu.Unlock()

	var result poseServiceResponse
	if err := json.Unmarshal(message, &result); err != nil {
		return nil, fmt.Errorf("error unmarshaling pose response: %w", err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("pose service error: %s", result.Error)
	}

	if !result.Detected || len(result.Keypoints) < entity.NumJoints {
		return nil, ErrNoSubject
	}

	return &Detection{
		Keypoints: keypointSetFrom(result.Keypoints, view),
		MeshData:  result.MeshData,
	}, nil
}

func keypointSetFrom(points []poseKeypoint, view entity.View) *entity.KeypointSet {
	set := entity.NewKeypointSet(view)
	for i, name := range entity.JointOrder {
		p := points[i]
		set.Points[name] = entity.Keypoint{
			Name:       name,
			X:          p.X,
			Y:          p.Y,
			Confidence: p.Confidence,
		}
	}
	return set
}
