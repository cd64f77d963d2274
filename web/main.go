package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/df07/go-raycaster/pkg/output"
	"github.com/df07/go-raycaster/web/server"
)

func main() {
	_ = godotenv.Load()

	port := flag.Int("port", 8080, "Port to serve on")
	upload := flag.Bool("upload", false, "Allow ?upload=true using the RAYCASTER_S3_* bucket")
	flag.Parse()

	webServer := server.NewServer(*port)
	if *upload {
		uploader, err := output.NewS3Uploader(output.S3ConfigFromEnv(os.Getenv))
		if err != nil {
			log.Printf("Error configuring uploads: %v", err)
			os.Exit(1)
		}
		webServer.WithUploader(uploader)
	}

	log.Printf("Raycaster Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=default", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
