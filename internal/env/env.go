package env

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/zettelwerk/ticket-gateway/internal/shared/logger"
	"go.uber.org/zap"
)

// Env holds the process-wide configuration. It is assembled once by LoadEnv
// and treated as immutable afterwards.
type Env struct {
	// HTTP / auth
	APIKey         string
	UIPass         string
	UIRememberDays int
	ServerPort     int

	// MQTT transport
	MQTTHost     string
	MQTTPort     int
	MQTTUser     string
	MQTTPassword string
	MQTTTLS      bool
	PrintTopic   string
	PrintQoS     int

	// Rendering
	PrintWidthPx    int
	MarginX         int
	MarginY         int
	FontFileTitle   string
	FontFileBody    string
	FontSizeTitle   int
	FontSizeBody    int
	LineSpacing     int
	BottomPadding   int
	MinCanvasHeight int

	// Timestamp formatting
	Timezone string
	Location *time.Location

	DebugMode bool
}

var Value Env

// LoadEnv reads .env (if present) and the process environment into Value.
// Must be called before any component constructor runs.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using process environment only")
	}

	Value = Env{
		APIKey:         getString("API_KEY", "change_me"),
		UIPass:         getString("UI_PASS", "set_me"),
		UIRememberDays: getInt("UI_REMEMBER_DAYS", 30),
		ServerPort:     getInt("SERVER_PORT", 8080),

		MQTTHost:     getString("MQTT_HOST", ""),
		MQTTPort:     getInt("MQTT_PORT", 8883),
		MQTTUser:     getString("MQTT_USERNAME", ""),
		MQTTPassword: getString("MQTT_PASSWORD", ""),
		MQTTTLS:      getBool("MQTT_TLS", true),
		PrintTopic:   getString("PRINT_TOPIC", "print/tickets"),
		PrintQoS:     getInt("PRINT_QOS", 2),

		PrintWidthPx:    getInt("PRINT_WIDTH_PX", 576), // 72mm * 8 dpmm (HS-830 standard)
		MarginX:         getInt("MARGIN_X", 20),
		MarginY:         getInt("MARGIN_Y", 20),
		FontFileTitle:   getString("FONT_FILE_TITLE", "ttf/DejaVuSans-Bold.ttf"),
		FontFileBody:    getString("FONT_FILE_BODY", "ttf/DejaVuSans.ttf"),
		FontSizeTitle:   getInt("FONT_SIZE_TITLE", 32),
		FontSizeBody:    getInt("FONT_SIZE_BODY", 28),
		LineSpacing:     getInt("LINE_SPACING", 10),
		BottomPadding:   getInt("BOTTOM_PADDING", 50),
		MinCanvasHeight: getInt("MIN_CANVAS_HEIGHT", 120),

		Timezone:  getString("TIMEZONE", "Europe/Zurich"),
		DebugMode: getBool("DEBUG_MODE", false),
	}

	if Value.PrintQoS < 0 || Value.PrintQoS > 2 {
		logger.Warn("PRINT_QOS out of range, using 2", zap.Int("value", Value.PrintQoS))
		Value.PrintQoS = 2
	}

	loc, err := time.LoadLocation(Value.Timezone)
	if err != nil {
		logger.Warn("Failed to load timezone, falling back to UTC",
			zap.String("timezone", Value.Timezone),
			zap.Error(err))
		loc = time.UTC
	}
	Value.Location = loc
}

// LinePitch is the vertical distance between successive text rows. Title rows
// use the same pitch as body rows.
func (e Env) LinePitch() int {
	return e.FontSizeBody + e.LineSpacing
}

// MaxTextWidth is the horizontal budget available to wrapped text.
func (e Env) MaxTextWidth() int {
	return e.PrintWidthPx - 2*e.MarginX
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn("Invalid integer in environment, using default",
			zap.String("key", key),
			zap.String("value", v),
			zap.Int("default", fallback))
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logger.Warn("Invalid boolean in environment, using default",
			zap.String("key", key),
			zap.String("value", v),
			zap.Bool("default", fallback))
		return fallback
	}
	return b
}
