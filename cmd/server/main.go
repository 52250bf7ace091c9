package main

import (
	"log"

	server "github.com/dhruvil1809/ecommerce-backend/cmd"
)

func main() {
	cfg, appCfg, err := server.InitConfig()
	if err != nil {
		log.Fatalf("Failed to initialize configuration: %v", err)
	}

	db, redisCache, err := server.SetupDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to setup database: %v", err)
	}
	defer db.Close()

	app := server.SetupApp(db, redisCache, cfg)

	log.Printf("Ecommerce backend listening on :%s (env %s)", appCfg.HTTPPort, appCfg.AppEnv)
	log.Fatal(app.Listen(":" + appCfg.HTTPPort))
}
