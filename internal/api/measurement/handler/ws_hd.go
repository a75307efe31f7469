package measurementHandler

import (
	"FashionistAI/internal/api/measurement"
	"FashionistAI/internal/entity"
	"encoding/json"
	"time"

	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"
)

// handleAnalyzeWebSocket runs a live analysis loop: each text message
// carries a base64 frame plus the subject's height, each reply is a
// full analysis result. Streamed frames are front-view only; two-view
// fusion is reserved for the HTTP endpoint.
func (h *MeasurementHandler) handleAnalyzeWebSocket(c *websocket.Conn) {
	h.log.Info("Body analysis WebSocket client connected")
	defer h.log.Info("Body analysis WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		h.log.Debug("Received ping, sending pong")
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	maxReadTimeout := 60 * time.Second

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Body analysis WebSocket error: %v", err)
			} else {
				h.log.Info("Body analysis WebSocket connection closed")
			}
			break
		}

		if messageType != websocket.TextMessage {
			h.log.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		var frame measurement.StreamFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			if writeErr := c.WriteJSON(measurement.StreamResult{Error: "invalid frame message"}); writeErr != nil {
				h.log.Errorf("Error sending error response: %v", writeErr)
				break
			}
			continue
		}

		result, err := h.analyzeStreamFrame(frame)
		if err != nil {
			if writeErr := c.WriteJSON(measurement.StreamResult{Error: err.Error()}); writeErr != nil {
				h.log.Errorf("Error sending error response: %v", writeErr)
				break
			}
			continue
		}

		if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			h.log.Errorf("Error setting write deadline: %v", err)
			break
		}

		if err := c.WriteJSON(measurement.StreamResult{Data: result}); err != nil {
			h.log.Errorf("Error writing JSON response: %v", err)
			break
		}

		if err := c.SetWriteDeadline(time.Time{}); err != nil {
			h.log.Errorf("Error resetting write deadline: %v", err)
			break
		}
	}
}

func (h *MeasurementHandler) analyzeStreamFrame(frame measurement.StreamFrame) (*entity.AnalysisResult, error) {
	frameBytes, err := h.utils.DecodeBase64Image(frame.FrameBase64)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return h.measurementService.Analyze(ctx, frameBytes, nil, frame.HeightCm)
}
