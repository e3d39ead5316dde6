package main

import (
	"github.com/htmltagllm/llmlaunch/cmd"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cmd.Execute()
}
