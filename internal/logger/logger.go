package logger

import (
	"voicelens/internal/config"
	"voicelens/internal/database"

	"go.uber.org/zap"
)

// NewLogger builds the zap logger. When the Mongo sink is configured the
// core is wrapped so every entry is also written asynchronously to the
// "logs" collection.
func NewLogger(cfg *config.Config, sink *database.MongodbDB) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Enable Caller to get Function Name
	zapConfig.EncoderConfig.FunctionKey = "func"

	baseLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	if !sink.Enabled() {
		return baseLogger, nil
	}

	dbWriter := NewDBLogWriter(sink, cfg)
	finalCore := NewDBCore(baseLogger.Core(), dbWriter)

	return zap.New(finalCore, zap.AddCaller()), nil
}
