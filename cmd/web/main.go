package main

import "tailorix_backend/internal/app"

func main() {
	app.Run()
}
