package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/zettelwerk/ticket-gateway/internal/env"
	"github.com/zettelwerk/ticket-gateway/internal/fontstore"
	"github.com/zettelwerk/ticket-gateway/internal/publisher"
	"github.com/zettelwerk/ticket-gateway/internal/shared/logger"
	"github.com/zettelwerk/ticket-gateway/internal/ticket"
	"github.com/zettelwerk/ticket-gateway/internal/transport"
	"github.com/zettelwerk/ticket-gateway/internal/version"
	"github.com/zettelwerk/ticket-gateway/internal/webserver"
	"go.uber.org/zap"
)

func main() {
	logger.Init(false)
	defer logger.Sync()

	logger.Info("Starting ticket gateway", zap.String("version", version.String()))

	env.LoadEnv()
	if env.Value.DebugMode {
		logger.Init(true)
		logger.Info("Debug mode enabled")
	}

	fonts := fontstore.Load(
		env.Value.FontFileTitle, float64(env.Value.FontSizeTitle),
		env.Value.FontFileBody, float64(env.Value.FontSizeBody),
	)
	for _, res := range fonts.Resolutions() {
		logger.Info("Font resolved",
			zap.String("role", string(res.Role)),
			zap.String("path", res.Path),
			zap.Bool("fallback", res.FallbackUsed))
	}

	renderer := ticket.New(ticket.Config{
		PrintWidthPx:  env.Value.PrintWidthPx,
		MarginX:       env.Value.MarginX,
		MarginY:       env.Value.MarginY,
		LinePitch:     env.Value.LinePitch(),
		BottomPadding: env.Value.BottomPadding,
		MinHeight:     env.Value.MinCanvasHeight,
	}, fonts)

	mqttClient, err := transport.NewMQTTClient(transport.MQTTConfig{
		Host:     env.Value.MQTTHost,
		Port:     env.Value.MQTTPort,
		Username: env.Value.MQTTUser,
		Password: env.Value.MQTTPassword,
		UseTLS:   env.Value.MQTTTLS,
	})
	if err != nil {
		logger.Fatal("Failed to create MQTT client", zap.Error(err))
	}
	if err := mqttClient.Connect(); err != nil {
		// The paho client keeps reconnecting in the background; publishes
		// fail honestly until the broker is reachable.
		logger.Error("Initial MQTT connect failed, will keep retrying", zap.Error(err))
	}
	defer mqttClient.Disconnect()

	pub := publisher.New(mqttClient, env.Value.PrintTopic, byte(env.Value.PrintQoS))

	if err := webserver.StartWebServer(env.Value.ServerPort, webserver.Deps{
		Renderer:  renderer,
		Publisher: pub,
		Fonts:     fonts,
	}); err != nil {
		logger.Fatal("Failed to start web server", zap.Error(err))
	}

	logger.Info("Server started",
		zap.Int("port", env.Value.ServerPort),
		zap.String("topic", env.Value.PrintTopic),
		zap.Int("qos", env.Value.PrintQoS))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	webserver.Shutdown()
	logger.Info("Shutdown complete")
}
