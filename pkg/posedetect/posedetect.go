// Package posedetect is the client for the external pose-estimation service.
// The service receives raw camera frames over a WebSocket and answers with the
// 33 body landmarks it detected; everything about the model itself stays on
// the other side of this connection.
package posedetect

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"SquatSense/internal/entity"
)

type IPoseDetector interface {
	ProcessFrame(frame []byte) (*entity.LandmarkFrame, error)
	IsConnected() bool
	Reconnect() error
	Close()
}

type poseDetector struct {
	conn         *websocket.Conn
	mu           sync.Mutex
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// landmarkMessage is the wire format of a pose-estimation response. Landmarks
// the model could not detect arrive as null entries.
type landmarkMessage struct {
	FrameNumber int64           `json:"frame_number"`
	Landmarks   []*entity.Point `json:"landmarks"`
	Error       string          `json:"error,omitempty"`
}

func New() IPoseDetector {
	client := &poseDetector{
		pingInterval: 30 * time.Second,
		readTimeout:  10 * time.Second,
		writeTimeout: 5 * time.Second,
	}

	go client.connectInBackground()

	return client
}

func (c *poseDetector) connectInBackground() {
	if err := c.Reconnect(); err != nil {
		log.Printf("Initial connection to pose estimation service failed: %v. Will retry on demand.", err)
	} else {
		log.Printf("Successfully connected to pose estimation service")
	}
}

func (c *poseDetector) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *poseDetector) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	url := os.Getenv("AI_POSE_DETECTION_URL")
	if url == "" {
		url = "ws://localhost:8000/api/v1/pose/ws"
	}

	log.Printf("Connecting to pose estimation service at %s", url)

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

func (c *poseDetector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *poseDetector) keepAlive() {
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
			log.Printf("Ping failed for pose estimation service, marking connection as dead: %v", err)
			c.conn = nil
			conn.Close()
			c.mu.Unlock()
			return
		}

		c.mu.Unlock()
	}
}

func (c *poseDetector) getConnection() (*websocket.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, fmt.Errorf("not connected to pose estimation service")
	}

	return c.conn, nil
}

// ProcessFrame sends one raw camera frame and blocks for the landmark
// response.
func (c *poseDetector) ProcessFrame(frame []byte) (*entity.LandmarkFrame, error) {
	conn, err := c.getConnection()
	if err != nil {
		if err := c.Reconnect(); err != nil {
			return nil, fmt.Errorf("cannot connect to pose estimation service: %w", err)
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
		return nil, fmt.Errorf("error reading landmark message: %w", err)
	}

	c.mu.Lock()
	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})
	c.mu.Unlock()

	var result landmarkMessage
	if err := json.Unmarshal(message, &result); err != nil {
		return nil, fmt.Errorf("error unmarshaling landmark response: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("pose estimation service error: %s", result.Error)
	}
	if len(result.Landmarks) > entity.NumLandmarks {
		return nil, fmt.Errorf("pose estimation service returned %d landmarks, expected at most %d",
			len(result.Landmarks), entity.NumLandmarks)
	}

	landmarkFrame := &entity.LandmarkFrame{FrameNumber: result.FrameNumber}
	copy(landmarkFrame.Points[:], result.Landmarks)

	return landmarkFrame, nil
}
