package main

import (
	"flag"

	"go.uber.org/zap"

	"warbler/crud"
	"warbler/http"
)

// main is the app's entry point.
func main() {
	// Check if the flag "-prod" has been provided. It means that we're running in production.
	productionBool := flag.Bool("prod", false, "Provide this flag in production to ensure that a .config.json file is provided before the application starts.")
	flag.Parse()

	logger := newLogger(*productionBool)
	defer logger.Sync()

	// Load configuration from a .config.json file if present, otherwise use the default dev setup.
	config := LoadConfig(*productionBool)

	// Open a database connection and execute migrations.
	db := NewDB(config.Database.ConnectionInfo())
	if err := Open(db, config.IsProd()); err != nil {
		logger.Fatal("opening database", zap.Error(err))
	}
	defer Close(db)
	if err := AutoMigrate(db); err != nil {
		logger.Fatal("running migrations", zap.Error(err))
	}

	// Start the crud services.
	services, err := crud.NewServices(
		db.Gorm,
		crud.WithUser(config.Pepper),
		crud.WithMessage(),
		crud.WithFollow(),
		crud.WithLike(),
		crud.WithProfile(),
	)
	if err != nil {
		logger.Fatal("creating services", zap.Error(err))
	}

	// Set up a webserver and serve the app.
	server := http.NewServer(services)
	logger.Info("listening", zap.Int("port", config.Port), zap.String("env", config.Env))
	if err := server.Run(config.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

// newLogger builds the process logger: structured json in production,
// human-readable in development.
func newLogger(isProd bool) *zap.Logger {
	if isProd {
		return zap.Must(zap.NewProduction())
	}
	return zap.Must(zap.NewDevelopment())
}
