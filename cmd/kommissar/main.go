package main

import "github.com/joho/godotenv"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	Execute()
}
